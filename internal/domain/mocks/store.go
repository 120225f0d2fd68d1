// Package mocks provides mock implementations of the domain ports for
// testing.
package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/brewscout/brewscout/internal/domain/entities"
)

// Store is a mock implementation of ports.Store. Setting Err makes every
// operation fail with it. Safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	Cafes     map[string]*entities.Cafe
	Reviews   map[string]*entities.Review
	Favorites map[string]map[string]bool
	Err       error
}

// NewStore creates a new mock Store.
func NewStore() *Store {
	return &Store{
		Cafes:     make(map[string]*entities.Cafe),
		Reviews:   make(map[string]*entities.Review),
		Favorites: make(map[string]map[string]bool),
	}
}

// EnsureSchema creates the storage schema if it doesn't exist.
func (m *Store) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the underlying connection.
func (m *Store) Close() error {
	return nil
}

// ListCafes returns all cafes sorted by id for deterministic tests.
func (m *Store) ListCafes(_ context.Context) ([]entities.Cafe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Cafe, 0, len(m.Cafes))
	for _, c := range m.Cafes {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetCafe finds a cafe by id.
func (m *Store) GetCafe(_ context.Context, id string) (*entities.Cafe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	cafe, ok := m.Cafes[id]
	if !ok {
		return nil, nil
	}
	copied := *cafe
	return &copied, nil
}

// CreateCafe persists a new cafe.
func (m *Store) CreateCafe(_ context.Context, cafe *entities.Cafe) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	copied := *cafe
	m.Cafes[cafe.ID] = &copied
	return nil
}

// UpdateCafe overwrites an existing cafe.
func (m *Store) UpdateCafe(_ context.Context, cafe *entities.Cafe) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Cafes[cafe.ID]; !ok {
		return entities.ErrNotFound
	}
	copied := *cafe
	m.Cafes[cafe.ID] = &copied
	return nil
}

// DeleteCafe removes a cafe by id.
func (m *Store) DeleteCafe(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Cafes[id]; !ok {
		return entities.ErrNotFound
	}
	delete(m.Cafes, id)
	return nil
}

// CountCafes returns the total number of cafes.
func (m *Store) CountCafes(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Cafes), nil
}

// ListReviews returns all reviews referencing the given cafe.
func (m *Store) ListReviews(_ context.Context, cafeID string) ([]entities.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Review
	for _, r := range m.Reviews {
		if r.CafeID == cafeID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListReviewsByUser returns all reviews written by the given user.
func (m *Store) ListReviewsByUser(_ context.Context, userID string) ([]entities.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Review
	for _, r := range m.Reviews {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetReview finds a review by id.
func (m *Store) GetReview(_ context.Context, id string) (*entities.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	review, ok := m.Reviews[id]
	if !ok {
		return nil, nil
	}
	copied := *review
	return &copied, nil
}

// CreateReview persists a new review.
func (m *Store) CreateReview(_ context.Context, review *entities.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	copied := *review
	m.Reviews[review.ID] = &copied
	return nil
}

// UpdateReview overwrites an existing review.
func (m *Store) UpdateReview(_ context.Context, review *entities.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Reviews[review.ID]; !ok {
		return entities.ErrNotFound
	}
	copied := *review
	m.Reviews[review.ID] = &copied
	return nil
}

// DeleteReview removes a review by id.
func (m *Store) DeleteReview(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Reviews[id]; !ok {
		return entities.ErrNotFound
	}
	delete(m.Reviews, id)
	return nil
}

// ListFavorites returns the cafe ids favorited by the given user.
func (m *Store) ListFavorites(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	var result []string
	for cafeID, on := range m.Favorites[userID] {
		if on {
			result = append(result, cafeID)
		}
	}
	sort.Strings(result)
	return result, nil
}

// ToggleFavorite flips the favorite state of a cafe for a user.
func (m *Store) ToggleFavorite(_ context.Context, userID, cafeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return false, m.Err
	}
	if m.Favorites[userID] == nil {
		m.Favorites[userID] = make(map[string]bool)
	}
	m.Favorites[userID][cafeID] = !m.Favorites[userID][cafeID]
	return m.Favorites[userID][cafeID], nil
}
