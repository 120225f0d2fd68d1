package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/ports"
)

// ReviewUpdate carries the editable fields of a review. Nil pointers
// leave the field untouched; id, cafe id and user id are never editable.
type ReviewUpdate struct {
	Rating *int
	Title  *string
	Text   *string
	Tags   []string
	Images []string
}

// ReviewService manages the review lifecycle and keeps each cafe's
// aggregate rating and review count consistent with its review set.
type ReviewService struct {
	store ports.Store
	auth  ports.Authenticator

	// Serializes recompute per cafe so the read-then-write on the cafe's
	// aggregate fields is atomic under concurrent review mutations.
	mu        sync.Mutex
	cafeLocks map[string]*sync.Mutex
}

// NewReviewService creates a new ReviewService.
func NewReviewService(store ports.Store, auth ports.Authenticator) *ReviewService {
	return &ReviewService{
		store:     store,
		auth:      auth,
		cafeLocks: make(map[string]*sync.Mutex),
	}
}

// Submit validates and persists a new review, then recomputes the owning
// cafe's aggregates. Requires a signed-in user; no partial review is
// ever persisted.
func (s *ReviewService) Submit(ctx context.Context, cafeID string, draft entities.Review) (*entities.Review, error) {
	session, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := draft
	review.ID = uuid.New().String()
	review.CafeID = cafeID
	review.UserID = session.User.ID
	review.AuthorName = session.User.DisplayName
	review.HelpfulCount = 0
	review.Reported = false
	review.Approved = false
	review.BusinessResponse = nil
	review.CreatedAt = now
	review.UpdatedAt = now

	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateReview(ctx, &review); err != nil {
		return nil, fmt.Errorf("saving review: %w", err)
	}

	if err := s.Recompute(ctx, cafeID); err != nil {
		return nil, err
	}
	return &review, nil
}

// Edit updates a review's editable fields. Only the author or an admin
// may edit; the merged review is re-validated before the write.
func (s *ReviewService) Edit(ctx context.Context, reviewID string, update ReviewUpdate) (*entities.Review, error) {
	session, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("loading review: %w", err)
	}
	if review == nil {
		return nil, entities.ErrNotFound
	}
	if review.UserID != session.User.ID && !session.User.Admin {
		return nil, fmt.Errorf("%w: not the review author", entities.ErrAuthRequired)
	}

	if update.Rating != nil {
		review.Rating = *update.Rating
	}
	if update.Title != nil {
		review.Title = *update.Title
	}
	if update.Text != nil {
		review.Text = *update.Text
	}
	if update.Tags != nil {
		review.Tags = update.Tags
	}
	if update.Images != nil {
		review.Images = update.Images
	}
	review.UpdatedAt = time.Now().UTC()

	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("updating review: %w", err)
	}

	if err := s.Recompute(ctx, review.CafeID); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review and recomputes the owning cafe's aggregates.
// Only the author or an admin may delete.
func (s *ReviewService) Delete(ctx context.Context, reviewID string) error {
	session, err := s.requireSession(ctx)
	if err != nil {
		return err
	}

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("loading review: %w", err)
	}
	if review == nil {
		return entities.ErrNotFound
	}
	if review.UserID != session.User.ID && !session.User.Admin {
		return fmt.Errorf("%w: not the review author", entities.ErrAuthRequired)
	}

	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}

	return s.Recompute(ctx, review.CafeID)
}

// ToggleHelpful adjusts a review's helpful count: +1 when marking, -1
// when unmarking, never below zero. Requires a signed-in user.
func (s *ReviewService) ToggleHelpful(ctx context.Context, reviewID string, helpful bool) (*entities.Review, error) {
	if _, err := s.requireSession(ctx); err != nil {
		return nil, err
	}

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("loading review: %w", err)
	}
	if review == nil {
		return nil, entities.ErrNotFound
	}

	if helpful {
		review.HelpfulCount++
	} else if review.HelpfulCount > 0 {
		review.HelpfulCount--
	}

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("updating review: %w", err)
	}
	return review, nil
}

// Respond attaches the single business reply to a review. Admin only.
func (s *ReviewService) Respond(ctx context.Context, reviewID, author, text string) (*entities.Review, error) {
	session, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !session.User.Admin {
		return nil, fmt.Errorf("%w: admin required", entities.ErrAuthRequired)
	}

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("loading review: %w", err)
	}
	if review == nil {
		return nil, entities.ErrNotFound
	}

	review.BusinessResponse = &entities.BusinessResponse{
		Author: author,
		Text:   text,
		Date:   time.Now().UTC(),
	}
	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("updating review: %w", err)
	}
	return review, nil
}

// Report flags a review for moderation. Requires a signed-in user; the
// flag does not gate visibility.
func (s *ReviewService) Report(ctx context.Context, reviewID string) error {
	if _, err := s.requireSession(ctx); err != nil {
		return err
	}
	return s.setModerationFlag(ctx, reviewID, func(r *entities.Review) { r.Reported = true })
}

// Approve marks a reported review as approved. Admin only; the flag does
// not gate visibility.
func (s *ReviewService) Approve(ctx context.Context, reviewID string) error {
	session, err := s.requireSession(ctx)
	if err != nil {
		return err
	}
	if !session.User.Admin {
		return fmt.Errorf("%w: admin required", entities.ErrAuthRequired)
	}
	return s.setModerationFlag(ctx, reviewID, func(r *entities.Review) { r.Approved = true })
}

// ListForCafe returns all reviews referencing a cafe.
func (s *ReviewService) ListForCafe(ctx context.Context, cafeID string) ([]entities.Review, error) {
	return s.store.ListReviews(ctx, cafeID)
}

// ListForUser returns all reviews written by a user.
func (s *ReviewService) ListForUser(ctx context.Context, userID string) ([]entities.Review, error) {
	return s.store.ListReviewsByUser(ctx, userID)
}

// Recompute reads every review referencing the cafe and writes the
// review count and the 1-decimal mean rating onto it. Idempotent. If the
// cafe no longer exists this is a silent no-op: a dangling review is not
// fatal.
func (s *ReviewService) Recompute(ctx context.Context, cafeID string) error {
	unlock := s.lockCafe(cafeID)
	defer unlock()

	cafe, err := s.store.GetCafe(ctx, cafeID)
	if err != nil {
		return fmt.Errorf("loading cafe: %w", err)
	}
	if cafe == nil {
		return nil
	}

	reviews, err := s.store.ListReviews(ctx, cafeID)
	if err != nil {
		return fmt.Errorf("listing reviews: %w", err)
	}

	cafe.ReviewCount = len(reviews)
	cafe.Rating = AggregateRating(reviews)

	if err := s.store.UpdateCafe(ctx, cafe); err != nil {
		return fmt.Errorf("updating cafe aggregates: %w", err)
	}
	return nil
}

// AggregateRating computes the arithmetic mean of the review ratings,
// rounded to one decimal place. An empty set yields 0.
func AggregateRating(reviews []entities.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}

func (s *ReviewService) setModerationFlag(ctx context.Context, reviewID string, set func(*entities.Review)) error {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("loading review: %w", err)
	}
	if review == nil {
		return entities.ErrNotFound
	}
	set(review)
	if err := s.store.UpdateReview(ctx, review); err != nil {
		return fmt.Errorf("updating review: %w", err)
	}
	return nil
}

func (s *ReviewService) requireSession(ctx context.Context) (*ports.Session, error) {
	session, err := s.auth.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving session: %w", err)
	}
	if session == nil {
		return nil, entities.ErrAuthRequired
	}
	return session, nil
}

// lockCafe returns an unlock func for the cafe's keyed mutex.
func (s *ReviewService) lockCafe(cafeID string) func() {
	s.mu.Lock()
	lock, ok := s.cafeLocks[cafeID]
	if !ok {
		lock = &sync.Mutex{}
		s.cafeLocks[cafeID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
