package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/mocks"
)

func TestCatalogService_Create_StampsServerFields(t *testing.T) {
	store := mocks.NewStore()
	service := NewCatalogService(store, mocks.NewAuth(testUser()))

	created, err := service.Create(context.Background(), entities.Cafe{
		ID:          "spoofed",
		Name:        "Brew & Study",
		Rating:      4.8,
		ReviewCount: 42,
	})

	require.NoError(t, err)
	assert.NotEqual(t, "spoofed", created.ID)
	assert.Equal(t, 0, created.ReviewCount)
	assert.True(t, created.Featured)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, "user-1", created.CreatedBy.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCatalogService_Create_RequiresSession(t *testing.T) {
	store := mocks.NewStore()
	service := NewCatalogService(store, mocks.NewSignedOutAuth())

	_, err := service.Create(context.Background(), entities.Cafe{Name: "X"})

	require.ErrorIs(t, err, entities.ErrAuthRequired)
	assert.Empty(t, store.Cafes)
}

func TestCatalogService_Create_Validation(t *testing.T) {
	store := mocks.NewStore()
	service := NewCatalogService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	_, err := service.Create(ctx, entities.Cafe{})
	assert.ErrorIs(t, err, entities.ErrInvalidInput)

	_, err = service.Create(ctx, entities.Cafe{Name: "X", Price: "$$$$"})
	assert.ErrorIs(t, err, entities.ErrInvalidInput)

	created, err := service.Create(ctx, entities.Cafe{Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, entities.PriceMid, created.Price)
}

func TestCatalogService_Update_PreservesProvenance(t *testing.T) {
	store := mocks.NewStore()
	service := NewCatalogService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	created, err := service.Create(ctx, entities.Cafe{Name: "Before", Price: entities.PriceLow})
	require.NoError(t, err)

	store.Cafes[created.ID].ReviewCount = 7

	updated, err := service.Update(ctx, created.ID, entities.Cafe{Name: "After"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, created.CreatedBy, updated.CreatedBy)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 7, updated.ReviewCount)
	assert.Equal(t, entities.PriceLow, updated.Price)
}

func TestCatalogService_Update_PreservesReviewAggregates(t *testing.T) {
	store := mocks.NewStore()
	auth := mocks.NewAuth(testUser())
	catalog := NewCatalogService(store, auth)
	reviews := NewReviewService(store, auth)
	ctx := context.Background()

	created, err := catalog.Create(ctx, entities.Cafe{Name: "Brew & Study"})
	require.NoError(t, err)

	_, err = reviews.Submit(ctx, created.ID, entities.Review{
		Rating: 4,
		Text:   "Great espresso and quiet corners.",
	})
	require.NoError(t, err)

	// A rename that says nothing about rating must not reset the
	// review-derived aggregate.
	updated, err := catalog.Update(ctx, created.ID, entities.Cafe{Name: "Brew & Study Annex"})
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.Rating)
	assert.Equal(t, 1, updated.ReviewCount)

	// Nor may a caller set the aggregate directly.
	updated, err = catalog.Update(ctx, created.ID, entities.Cafe{Name: "Brew & Study", Rating: 1.0})
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.Rating)
	assert.Equal(t, 4.0, store.Cafes[created.ID].Rating)
}

func TestCatalogService_Update_NotFound(t *testing.T) {
	service := NewCatalogService(mocks.NewStore(), mocks.NewAuth(testUser()))

	_, err := service.Update(context.Background(), "missing", entities.Cafe{Name: "X"})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestCatalogService_Delete_CascadesReviews(t *testing.T) {
	store := mocks.NewStore()
	service := NewCatalogService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	store.Cafes["cafe-1"] = &entities.Cafe{ID: "cafe-1", Name: "X"}
	store.Reviews["r1"] = &entities.Review{ID: "r1", CafeID: "cafe-1"}
	store.Reviews["r2"] = &entities.Review{ID: "r2", CafeID: "cafe-1"}
	store.Reviews["r3"] = &entities.Review{ID: "r3", CafeID: "other"}

	require.NoError(t, service.Delete(ctx, "cafe-1"))

	assert.Empty(t, store.Cafes)
	assert.Len(t, store.Reviews, 1)
	assert.Contains(t, store.Reviews, "r3")
}

func TestCatalogService_SetFeatured_AdminOnly(t *testing.T) {
	store := mocks.NewStore()
	store.Cafes["cafe-1"] = &entities.Cafe{ID: "cafe-1", Name: "X"}
	ctx := context.Background()

	user := NewCatalogService(store, mocks.NewAuth(testUser()))
	_, err := user.SetFeatured(ctx, "cafe-1", true)
	require.ErrorIs(t, err, entities.ErrAuthRequired)

	admin := NewCatalogService(store, mocks.NewAuth(testAdmin()))
	cafe, err := admin.SetFeatured(ctx, "cafe-1", true)
	require.NoError(t, err)
	assert.True(t, cafe.Featured)

	cafe, err = admin.SetFeatured(ctx, "cafe-1", false)
	require.NoError(t, err)
	assert.False(t, cafe.Featured)
}

func TestCatalogService_Get_MissingIsNil(t *testing.T) {
	service := NewCatalogService(mocks.NewStore(), mocks.NewAuth(testUser()))

	cafe, err := service.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, cafe)
}
