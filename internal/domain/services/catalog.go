package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/ports"
)

// CatalogService manages the cafe collection behind the Store port.
type CatalogService struct {
	store ports.Store
	auth  ports.Authenticator
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store ports.Store, auth ports.Authenticator) *CatalogService {
	return &CatalogService{store: store, auth: auth}
}

// List returns all cafes.
func (s *CatalogService) List(ctx context.Context) ([]entities.Cafe, error) {
	return s.store.ListCafes(ctx)
}

// Get finds a cafe by id. Returns nil when the id does not resolve.
func (s *CatalogService) Get(ctx context.Context, id string) (*entities.Cafe, error) {
	return s.store.GetCafe(ctx, id)
}

// Create persists a new listing, stamping id, creation time and the
// creating account. Requires a signed-in user.
func (s *CatalogService) Create(ctx context.Context, cafe entities.Cafe) (*entities.Cafe, error) {
	session, err := s.auth.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving session: %w", err)
	}
	if session == nil {
		return nil, entities.ErrAuthRequired
	}

	if cafe.Name == "" {
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidInput)
	}
	if cafe.Price == "" {
		cafe.Price = entities.PriceMid
	}
	if !cafe.Price.Valid() {
		return nil, fmt.Errorf("%w: unknown price tier %q", entities.ErrInvalidInput, cafe.Price)
	}

	cafe.ID = uuid.New().String()
	cafe.CreatedAt = time.Now().UTC()
	cafe.CreatedBy = session.User.Ref()
	cafe.ReviewCount = 0
	if cafe.Rating >= entities.FeaturedRatingThreshold {
		cafe.Featured = true
	}

	if err := s.store.CreateCafe(ctx, &cafe); err != nil {
		return nil, fmt.Errorf("saving cafe: %w", err)
	}
	return &cafe, nil
}

// Update overwrites the mutable fields of a listing. The id, creator,
// creation time and review aggregates are preserved; rating and review
// count only move through review recomputes. Returns entities.ErrNotFound
// when the id does not resolve.
func (s *CatalogService) Update(ctx context.Context, id string, updates entities.Cafe) (*entities.Cafe, error) {
	existing, err := s.store.GetCafe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading cafe: %w", err)
	}
	if existing == nil {
		return nil, entities.ErrNotFound
	}

	updates.ID = existing.ID
	updates.CreatedBy = existing.CreatedBy
	updates.CreatedAt = existing.CreatedAt
	updates.ReviewCount = existing.ReviewCount
	updates.Rating = existing.Rating
	if updates.Price == "" {
		updates.Price = existing.Price
	}
	if !updates.Price.Valid() {
		return nil, fmt.Errorf("%w: unknown price tier %q", entities.ErrInvalidInput, updates.Price)
	}

	if err := s.store.UpdateCafe(ctx, &updates); err != nil {
		return nil, fmt.Errorf("updating cafe: %w", err)
	}
	return &updates, nil
}

// Delete removes a listing and its reviews. Reviews go first so a crash
// between the two writes cannot leave orphans pointing at a live cafe.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	reviews, err := s.store.ListReviews(ctx, id)
	if err != nil {
		return fmt.Errorf("listing cafe reviews: %w", err)
	}
	for _, review := range reviews {
		if err := s.store.DeleteReview(ctx, review.ID); err != nil {
			return fmt.Errorf("deleting cafe review: %w", err)
		}
	}

	if err := s.store.DeleteCafe(ctx, id); err != nil {
		return fmt.Errorf("deleting cafe: %w", err)
	}
	return nil
}

// SetFeatured toggles the explicit featured flag on a listing. Admin only.
func (s *CatalogService) SetFeatured(ctx context.Context, id string, featured bool) (*entities.Cafe, error) {
	session, err := s.auth.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving session: %w", err)
	}
	if session == nil || !session.User.Admin {
		return nil, fmt.Errorf("%w: admin required", entities.ErrAuthRequired)
	}

	cafe, err := s.store.GetCafe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading cafe: %w", err)
	}
	if cafe == nil {
		return nil, entities.ErrNotFound
	}

	cafe.Featured = featured
	if err := s.store.UpdateCafe(ctx, cafe); err != nil {
		return nil, fmt.Errorf("updating cafe: %w", err)
	}
	return cafe, nil
}

// Count returns the number of cafes in the catalog.
func (s *CatalogService) Count(ctx context.Context) (int, error) {
	return s.store.CountCafes(ctx)
}
