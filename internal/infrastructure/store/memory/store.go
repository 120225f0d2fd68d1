// Package memory provides an in-memory implementation of the Store
// interface, used for tests and for running without a database file.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/brewscout/brewscout/internal/domain/entities"
)

// Store keeps all data in process memory. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	cafes     map[string]entities.Cafe
	reviews   map[string]entities.Review
	favorites map[string]map[string]bool // userID -> cafeID -> true
	order     []string                   // cafe insertion order
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		cafes:     make(map[string]entities.Cafe),
		reviews:   make(map[string]entities.Review),
		favorites: make(map[string]map[string]bool),
	}
}

// EnsureSchema is a no-op for the in-memory store.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// ListCafes returns all cafes in insertion order.
func (s *Store) ListCafes(ctx context.Context) ([]entities.Cafe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cafes := make([]entities.Cafe, 0, len(s.order))
	for _, id := range s.order {
		cafes = append(cafes, copyCafe(s.cafes[id]))
	}
	return cafes, nil
}

// GetCafe finds a cafe by id. Returns nil when the id does not resolve.
func (s *Store) GetCafe(ctx context.Context, id string) (*entities.Cafe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cafe, ok := s.cafes[id]
	if !ok {
		return nil, nil
	}
	c := copyCafe(cafe)
	return &c, nil
}

// CreateCafe stores a new cafe.
func (s *Store) CreateCafe(ctx context.Context, cafe *entities.Cafe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cafes[cafe.ID]; !ok {
		s.order = append(s.order, cafe.ID)
	}
	s.cafes[cafe.ID] = copyCafe(*cafe)
	return nil
}

// UpdateCafe overwrites an existing cafe.
func (s *Store) UpdateCafe(ctx context.Context, cafe *entities.Cafe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cafes[cafe.ID]; !ok {
		return entities.ErrNotFound
	}
	s.cafes[cafe.ID] = copyCafe(*cafe)
	return nil
}

// DeleteCafe removes a cafe by id.
func (s *Store) DeleteCafe(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cafes[id]; !ok {
		return entities.ErrNotFound
	}
	delete(s.cafes, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// CountCafes returns the total number of cafes.
func (s *Store) CountCafes(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cafes), nil
}

// ListReviews returns all reviews referencing the given cafe, oldest first.
func (s *Store) ListReviews(ctx context.Context, cafeID string) ([]entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []entities.Review
	for _, review := range s.reviews {
		if review.CafeID == cafeID {
			reviews = append(reviews, copyReview(review))
		}
	}
	sortReviews(reviews)
	return reviews, nil
}

// ListReviewsByUser returns all reviews written by the given user, oldest first.
func (s *Store) ListReviewsByUser(ctx context.Context, userID string) ([]entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []entities.Review
	for _, review := range s.reviews {
		if review.UserID == userID {
			reviews = append(reviews, copyReview(review))
		}
	}
	sortReviews(reviews)
	return reviews, nil
}

// GetReview finds a review by id. Returns nil when the id does not resolve.
func (s *Store) GetReview(ctx context.Context, id string) (*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, nil
	}
	r := copyReview(review)
	return &r, nil
}

// CreateReview stores a new review.
func (s *Store) CreateReview(ctx context.Context, review *entities.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reviews[review.ID] = copyReview(*review)
	return nil
}

// UpdateReview overwrites an existing review.
func (s *Store) UpdateReview(ctx context.Context, review *entities.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ID]; !ok {
		return entities.ErrNotFound
	}
	s.reviews[review.ID] = copyReview(*review)
	return nil
}

// DeleteReview removes a review by id.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return entities.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

// ListFavorites returns the cafe ids favorited by the given user, sorted.
func (s *Store) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cafeIDs []string
	for cafeID := range s.favorites[userID] {
		cafeIDs = append(cafeIDs, cafeID)
	}
	sort.Strings(cafeIDs)
	return cafeIDs, nil
}

// ToggleFavorite flips the favorite state of a cafe for a user and
// reports the new state.
func (s *Store) ToggleFavorite(ctx context.Context, userID, cafeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.favorites[userID]
	if set == nil {
		set = make(map[string]bool)
		s.favorites[userID] = set
	}
	if set[cafeID] {
		delete(set, cafeID)
		return false, nil
	}
	set[cafeID] = true
	return true, nil
}

func sortReviews(reviews []entities.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.Before(reviews[j].CreatedAt)
		}
		return reviews[i].ID < reviews[j].ID
	})
}

func copyCafe(cafe entities.Cafe) entities.Cafe {
	c := cafe
	c.Amenities = append([]string(nil), cafe.Amenities...)
	c.Events = append([]entities.CafeEvent(nil), cafe.Events...)
	if cafe.CreatedBy != nil {
		createdBy := *cafe.CreatedBy
		c.CreatedBy = &createdBy
	}
	return c
}

func copyReview(review entities.Review) entities.Review {
	r := review
	r.Tags = append([]string(nil), review.Tags...)
	r.Images = append([]string(nil), review.Images...)
	if review.BusinessResponse != nil {
		response := *review.BusinessResponse
		r.BusinessResponse = &response
	}
	return r
}
