package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/mocks"
)

func testUser() entities.User {
	return entities.User{ID: "user-1", Email: "u@example.com", DisplayName: "Priya"}
}

func testAdmin() entities.User {
	return entities.User{ID: "admin-1", Email: "a@example.com", DisplayName: "Admin", Admin: true}
}

func seedCafe(store *mocks.Store) {
	store.Cafes["cafe-1"] = &entities.Cafe{ID: "cafe-1", Name: "Brew & Study"}
}

func TestReviewService_Submit_RecomputesAggregates(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	service := NewReviewService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	for _, rating := range []int{5, 4, 3} {
		_, err := service.Submit(ctx, "cafe-1", entities.Review{
			Rating: rating,
			Text:   "A thoroughly decent espresso.",
		})
		require.NoError(t, err)
	}

	cafe := store.Cafes["cafe-1"]
	assert.Equal(t, 3, cafe.ReviewCount)
	assert.Equal(t, 4.0, cafe.Rating)
}

func TestReviewService_Submit_RequiresSession(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	service := NewReviewService(store, mocks.NewSignedOutAuth())

	_, err := service.Submit(context.Background(), "cafe-1", entities.Review{
		Rating: 5,
		Text:   "A thoroughly decent espresso.",
	})

	require.ErrorIs(t, err, entities.ErrAuthRequired)
	assert.Empty(t, store.Reviews)
}

func TestReviewService_Submit_TextLengthBoundary(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	service := NewReviewService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	// 9 characters after trimming: rejected, nothing persisted.
	_, err := service.Submit(ctx, "cafe-1", entities.Review{Rating: 5, Text: "  123456789  "})
	require.ErrorIs(t, err, entities.ErrInvalidInput)
	assert.Empty(t, store.Reviews)
	assert.Equal(t, 0, store.Cafes["cafe-1"].ReviewCount)

	// 10 characters: accepted.
	_, err = service.Submit(ctx, "cafe-1", entities.Review{Rating: 5, Text: "1234567890"})
	require.NoError(t, err)
	assert.Len(t, store.Reviews, 1)
}

func TestReviewService_Submit_RatingBounds(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	service := NewReviewService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := service.Submit(ctx, "cafe-1", entities.Review{
			Rating: rating,
			Text:   "A thoroughly decent espresso.",
		})
		assert.ErrorIs(t, err, entities.ErrInvalidInput, "rating %d", rating)
	}
}

func TestReviewService_Submit_StampsServerFields(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	service := NewReviewService(store, mocks.NewAuth(testUser()))

	review, err := service.Submit(context.Background(), "cafe-1", entities.Review{
		ID:           "spoofed",
		UserID:       "someone-else",
		Rating:       4,
		Text:         "A thoroughly decent espresso.",
		HelpfulCount: 99,
	})

	require.NoError(t, err)
	assert.NotEqual(t, "spoofed", review.ID)
	assert.Equal(t, "user-1", review.UserID)
	assert.Equal(t, "Priya", review.AuthorName)
	assert.Equal(t, 0, review.HelpfulCount)
	assert.False(t, review.CreatedAt.IsZero())
}

func TestReviewService_Delete_RecomputesAggregates(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	service := NewReviewService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	var ids []string
	for _, rating := range []int{5, 4, 3} {
		review, err := service.Submit(ctx, "cafe-1", entities.Review{
			Rating: rating,
			Text:   "A thoroughly decent espresso.",
		})
		require.NoError(t, err)
		ids = append(ids, review.ID)
	}

	// Drop the 3-star review; mean of {5,4} is 4.5.
	require.NoError(t, service.Delete(ctx, ids[2]))

	cafe := store.Cafes["cafe-1"]
	assert.Equal(t, 2, cafe.ReviewCount)
	assert.Equal(t, 4.5, cafe.Rating)
}

func TestReviewService_Delete_AuthorOrAdminOnly(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	ctx := context.Background()

	author := NewReviewService(store, mocks.NewAuth(testUser()))
	review, err := author.Submit(ctx, "cafe-1", entities.Review{
		Rating: 5,
		Text:   "A thoroughly decent espresso.",
	})
	require.NoError(t, err)

	stranger := NewReviewService(store, mocks.NewAuth(entities.User{ID: "user-2"}))
	err = stranger.Delete(ctx, review.ID)
	require.ErrorIs(t, err, entities.ErrAuthRequired)

	admin := NewReviewService(store, mocks.NewAuth(testAdmin()))
	require.NoError(t, admin.Delete(ctx, review.ID))
	assert.Empty(t, store.Reviews)
}

func TestReviewService_Edit_RevalidatesMergedReview(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	service := NewReviewService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	review, err := service.Submit(ctx, "cafe-1", entities.Review{
		Rating: 5,
		Text:   "A thoroughly decent espresso.",
	})
	require.NoError(t, err)

	short := "too short"
	_, err = service.Edit(ctx, review.ID, ReviewUpdate{Text: &short})
	require.ErrorIs(t, err, entities.ErrInvalidInput)

	newRating := 2
	updated, err := service.Edit(ctx, review.ID, ReviewUpdate{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
	assert.Equal(t, 2.0, store.Cafes["cafe-1"].Rating)
}

func TestReviewService_ToggleHelpful_FlooredAtZero(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	service := NewReviewService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	review, err := service.Submit(ctx, "cafe-1", entities.Review{
		Rating: 5,
		Text:   "A thoroughly decent espresso.",
	})
	require.NoError(t, err)

	marked, err := service.ToggleHelpful(ctx, review.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, marked.HelpfulCount)

	unmarked, err := service.ToggleHelpful(ctx, review.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, unmarked.HelpfulCount)

	// Unmarking at zero stays at zero.
	unmarked, err = service.ToggleHelpful(ctx, review.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, unmarked.HelpfulCount)
}

func TestReviewService_Respond_AdminOnly(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	ctx := context.Background()

	author := NewReviewService(store, mocks.NewAuth(testUser()))
	review, err := author.Submit(ctx, "cafe-1", entities.Review{
		Rating: 5,
		Text:   "A thoroughly decent espresso.",
	})
	require.NoError(t, err)

	_, err = author.Respond(ctx, review.ID, "Management", "Thanks for visiting!")
	require.ErrorIs(t, err, entities.ErrAuthRequired)

	admin := NewReviewService(store, mocks.NewAuth(testAdmin()))
	responded, err := admin.Respond(ctx, review.ID, "Management", "Thanks for visiting!")
	require.NoError(t, err)
	require.NotNil(t, responded.BusinessResponse)
	assert.Equal(t, "Management", responded.BusinessResponse.Author)
}

func TestReviewService_Report_RequiresSession(t *testing.T) {
	store := mocks.NewStore()
	store.Reviews["rev-1"] = &entities.Review{ID: "rev-1", CafeID: "cafe-1"}
	service := NewReviewService(store, mocks.NewSignedOutAuth())

	err := service.Report(context.Background(), "rev-1")

	require.ErrorIs(t, err, entities.ErrAuthRequired)
	assert.False(t, store.Reviews["rev-1"].Reported)
}

func TestReviewService_Report_SetsFlag(t *testing.T) {
	store := mocks.NewStore()
	store.Reviews["rev-1"] = &entities.Review{ID: "rev-1", CafeID: "cafe-1"}
	service := NewReviewService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	require.NoError(t, service.Report(ctx, "rev-1"))
	assert.True(t, store.Reviews["rev-1"].Reported)

	err := service.Report(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestReviewService_Approve_AdminOnly(t *testing.T) {
	store := mocks.NewStore()
	store.Reviews["rev-1"] = &entities.Review{ID: "rev-1", CafeID: "cafe-1", Reported: true}
	ctx := context.Background()

	user := NewReviewService(store, mocks.NewAuth(testUser()))
	err := user.Approve(ctx, "rev-1")
	require.ErrorIs(t, err, entities.ErrAuthRequired)
	assert.False(t, store.Reviews["rev-1"].Approved)

	admin := NewReviewService(store, mocks.NewAuth(testAdmin()))
	require.NoError(t, admin.Approve(ctx, "rev-1"))
	assert.True(t, store.Reviews["rev-1"].Approved)
	assert.True(t, store.Reviews["rev-1"].Reported, "approving must not clear the report flag")
}

func TestReviewService_ListForUser(t *testing.T) {
	store := mocks.NewStore()
	store.Reviews["rev-1"] = &entities.Review{ID: "rev-1", CafeID: "cafe-1", UserID: "user-1"}
	store.Reviews["rev-2"] = &entities.Review{ID: "rev-2", CafeID: "cafe-2", UserID: "user-2"}
	store.Reviews["rev-3"] = &entities.Review{ID: "rev-3", CafeID: "cafe-1", UserID: "user-1"}
	service := NewReviewService(store, mocks.NewAuth(testUser()))

	reviews, err := service.ListForUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	for _, review := range reviews {
		assert.Equal(t, "user-1", review.UserID)
	}
}

func TestReviewService_Recompute_MissingCafeIsNoOp(t *testing.T) {
	store := mocks.NewStore()
	service := NewReviewService(store, mocks.NewAuth(testUser()))

	err := service.Recompute(context.Background(), "nope")
	assert.NoError(t, err)
}

func TestReviewService_Recompute_Idempotent(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	service := NewReviewService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	_, err := service.Submit(ctx, "cafe-1", entities.Review{
		Rating: 4,
		Text:   "A thoroughly decent espresso.",
	})
	require.NoError(t, err)

	require.NoError(t, service.Recompute(ctx, "cafe-1"))
	require.NoError(t, service.Recompute(ctx, "cafe-1"))

	cafe := store.Cafes["cafe-1"]
	assert.Equal(t, 1, cafe.ReviewCount)
	assert.Equal(t, 4.0, cafe.Rating)
}

func TestReviewService_Submit_ConcurrentRecompute(t *testing.T) {
	store := mocks.NewStore()
	seedCafe(store)
	service := NewReviewService(store, mocks.NewAuth(testUser()))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Submit(ctx, "cafe-1", entities.Review{
				Rating: 4,
				Text:   strings.Repeat("fine ", 3),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cafe := store.Cafes["cafe-1"]
	assert.Equal(t, 10, cafe.ReviewCount)
	assert.Equal(t, 4.0, cafe.Rating)
}

func TestAggregateRating(t *testing.T) {
	assert.Equal(t, 0.0, AggregateRating(nil))
	assert.Equal(t, 4.0, AggregateRating([]entities.Review{
		{Rating: 5}, {Rating: 4}, {Rating: 3},
	}))
	// 11/3 rounds to 3.7.
	assert.Equal(t, 3.7, AggregateRating([]entities.Review{
		{Rating: 5}, {Rating: 3}, {Rating: 3},
	}))
}
