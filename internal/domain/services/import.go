package services

import (
	"context"
	"fmt"

	"github.com/brewscout/brewscout/internal/domain/ports"
	"github.com/brewscout/brewscout/internal/infrastructure/sources"
)

// ConflictStrategy defines how to handle cafes that already exist
// (by id) during import.
type ConflictStrategy string

const (
	// ConflictSkip leaves existing cafes untouched.
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite replaces existing cafes with the imported data.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // normalize and count without saving
	OnConflict ConflictStrategy // how to handle existing cafes
}

// ImportResult contains the outcome of an import run.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportService ingests raw records from external sources into the
// catalog. Normalization is total, so malformed rows degrade to
// defaulted cafes rather than import errors.
type ImportService struct {
	store      ports.Store
	normalizer *Normalizer
}

// NewImportService creates a new ImportService.
func NewImportService(store ports.Store, normalizer *Normalizer) *ImportService {
	return &ImportService{store: store, normalizer: normalizer}
}

// Import normalizes and persists raw records. Repeated imports of the
// same source are idempotent under ConflictOverwrite because the
// normalizer is deterministic per (record, index).
func (s *ImportService) Import(ctx context.Context, records []sources.Record, opts ImportOptions) (*ImportResult, error) {
	if opts.OnConflict == "" {
		opts.OnConflict = ConflictSkip
	}

	result := &ImportResult{}

	for i, record := range records {
		cafe := s.normalizer.Normalize(record, i)

		existing, err := s.store.GetCafe(ctx, cafe.ID)
		if err != nil {
			return nil, fmt.Errorf("checking cafe %s: %w", cafe.ID, err)
		}

		if existing != nil && opts.OnConflict == ConflictSkip {
			result.Skipped++
			continue
		}

		if opts.DryRun {
			result.Imported++
			continue
		}

		if existing != nil {
			// Aggregates are owned by the review set, not the source file.
			cafe.Rating = existing.Rating
			cafe.ReviewCount = existing.ReviewCount
			if err := s.store.UpdateCafe(ctx, &cafe); err != nil {
				return nil, fmt.Errorf("updating cafe %s: %w", cafe.ID, err)
			}
		} else {
			if err := s.store.CreateCafe(ctx, &cafe); err != nil {
				return nil, fmt.Errorf("saving cafe %s: %w", cafe.ID, err)
			}
		}
		result.Imported++
	}

	return result, nil
}
