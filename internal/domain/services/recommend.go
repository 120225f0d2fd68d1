package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/ports"
)

// TrendingLimit caps the trending and personalized feeds.
const TrendingLimit = 6

// RecommendService produces the home-page feeds. These are simple
// rankings over existing aggregates, not a recommender model.
type RecommendService struct {
	store ports.Store
}

// NewRecommendService creates a new RecommendService.
func NewRecommendService(store ports.Store) *RecommendService {
	return &RecommendService{store: store}
}

// Trending ranks cafes by review count, most reviewed first.
func (s *RecommendService) Trending(ctx context.Context) ([]entities.Cafe, error) {
	cafes, err := s.store.ListCafes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cafes: %w", err)
	}

	sort.SliceStable(cafes, func(i, j int) bool {
		return cafes[i].ReviewCount > cafes[j].ReviewCount
	})
	if len(cafes) > TrendingLimit {
		cafes = cafes[:TrendingLimit]
	}
	return cafes, nil
}

// Personalized prefers higher rated cafes for the given user. Naive on
// purpose: the user id reserves the signature for smarter ranking later.
func (s *RecommendService) Personalized(ctx context.Context, userID string) ([]entities.Cafe, error) {
	cafes, err := s.store.ListCafes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cafes: %w", err)
	}

	sort.SliceStable(cafes, func(i, j int) bool {
		return cafes[i].Rating > cafes[j].Rating
	})
	if len(cafes) > TrendingLimit {
		cafes = cafes[:TrendingLimit]
	}
	return cafes, nil
}

// ToggleFavorite flips a cafe's favorite state for a user and reports
// whether it is now favorited.
func (s *RecommendService) ToggleFavorite(ctx context.Context, userID, cafeID string) (bool, error) {
	if userID == "" {
		return false, entities.ErrAuthRequired
	}
	return s.store.ToggleFavorite(ctx, userID, cafeID)
}

// Favorites returns the cafe ids favorited by a user.
func (s *RecommendService) Favorites(ctx context.Context, userID string) ([]string, error) {
	return s.store.ListFavorites(ctx, userID)
}
