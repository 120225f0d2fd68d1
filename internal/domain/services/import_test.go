package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewscout/brewscout/internal/domain/mocks"
	"github.com/brewscout/brewscout/internal/infrastructure/sources"
)

func csvRecords() []sources.Record {
	return []sources.Record{
		{Kind: sources.KindCSV, Fields: map[string]any{
			"NAME": "Brew & Study", "RATING": "4.6", "VOTES": "120", "PRICE": "800",
		}},
		{Kind: sources.KindCSV, Fields: map[string]any{
			"NAME": "Sunset Roasters", "RATING": "NEW", "PRICE": "1600",
		}},
	}
}

func TestImportService_Import_NewRecords(t *testing.T) {
	store := mocks.NewStore()
	service := NewImportService(store, NewNormalizer())

	result, err := service.Import(context.Background(), csvRecords(), ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Len(t, store.Cafes, 2)
}

func TestImportService_Import_SkipExisting(t *testing.T) {
	store := mocks.NewStore()
	service := NewImportService(store, NewNormalizer())
	ctx := context.Background()

	_, err := service.Import(ctx, csvRecords(), ImportOptions{})
	require.NoError(t, err)

	result, err := service.Import(ctx, csvRecords(), ImportOptions{OnConflict: ConflictSkip})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 2, result.Skipped)
}

func TestImportService_Import_OverwritePreservesAggregates(t *testing.T) {
	store := mocks.NewStore()
	service := NewImportService(store, NewNormalizer())
	ctx := context.Background()

	_, err := service.Import(ctx, csvRecords(), ImportOptions{})
	require.NoError(t, err)

	// Reviews landed in the meantime; the file's stale rating must not win.
	cafe := store.Cafes["csv_0"]
	require.NotNil(t, cafe)
	cafe.Rating = 3.2
	cafe.ReviewCount = 9

	result, err := service.Import(ctx, csvRecords(), ImportOptions{OnConflict: ConflictOverwrite})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	cafe = store.Cafes["csv_0"]
	assert.Equal(t, 3.2, cafe.Rating)
	assert.Equal(t, 9, cafe.ReviewCount)
}

func TestImportService_Import_DryRun(t *testing.T) {
	store := mocks.NewStore()
	service := NewImportService(store, NewNormalizer())

	result, err := service.Import(context.Background(), csvRecords(), ImportOptions{DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, store.Cafes)
}

func TestImportService_Import_Idempotent(t *testing.T) {
	store := mocks.NewStore()
	service := NewImportService(store, NewNormalizer())
	ctx := context.Background()

	_, err := service.Import(ctx, csvRecords(), ImportOptions{OnConflict: ConflictOverwrite})
	require.NoError(t, err)
	first := *store.Cafes["csv_0"]

	_, err = service.Import(ctx, csvRecords(), ImportOptions{OnConflict: ConflictOverwrite})
	require.NoError(t, err)
	second := *store.Cafes["csv_0"]

	assert.Equal(t, first, second)
}
