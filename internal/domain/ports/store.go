// Package ports defines the interfaces between the domain core and its
// infrastructure adapters.
package ports

import (
	"context"

	"github.com/brewscout/brewscout/internal/domain/entities"
)

// Store defines the persistence backend for cafes, reviews and favorites.
// The core does not care whether this is backed by SQLite, Postgres or
// memory, provided operations return the canonical entity shapes.
type Store interface {
	// EnsureSchema creates the storage schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error

	// Cafe operations

	// ListCafes returns all cafes.
	ListCafes(ctx context.Context) ([]entities.Cafe, error)

	// GetCafe finds a cafe by id. Returns nil when the id does not resolve.
	GetCafe(ctx context.Context, id string) (*entities.Cafe, error)

	// CreateCafe persists a new cafe.
	CreateCafe(ctx context.Context, cafe *entities.Cafe) error

	// UpdateCafe overwrites an existing cafe. Returns entities.ErrNotFound
	// when the id does not resolve.
	UpdateCafe(ctx context.Context, cafe *entities.Cafe) error

	// DeleteCafe removes a cafe by id. Returns entities.ErrNotFound when
	// the id does not resolve.
	DeleteCafe(ctx context.Context, id string) error

	// CountCafes returns the total number of cafes.
	CountCafes(ctx context.Context) (int, error)

	// Review operations

	// ListReviews returns all reviews referencing the given cafe.
	ListReviews(ctx context.Context, cafeID string) ([]entities.Review, error)

	// ListReviewsByUser returns all reviews written by the given user.
	ListReviewsByUser(ctx context.Context, userID string) ([]entities.Review, error)

	// GetReview finds a review by id. Returns nil when the id does not resolve.
	GetReview(ctx context.Context, id string) (*entities.Review, error)

	// CreateReview persists a new review.
	CreateReview(ctx context.Context, review *entities.Review) error

	// UpdateReview overwrites an existing review. Returns entities.ErrNotFound
	// when the id does not resolve.
	UpdateReview(ctx context.Context, review *entities.Review) error

	// DeleteReview removes a review by id. Returns entities.ErrNotFound when
	// the id does not resolve.
	DeleteReview(ctx context.Context, id string) error

	// Favorite operations

	// ListFavorites returns the cafe ids favorited by the given user.
	ListFavorites(ctx context.Context, userID string) ([]string, error)

	// ToggleFavorite flips the favorite state of a cafe for a user and
	// reports whether it is now favorited.
	ToggleFavorite(ctx context.Context, userID, cafeID string) (bool, error)
}
