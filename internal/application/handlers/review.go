package handlers

import (
	"context"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/services"
)

// ReviewHandler handles review operations at the application layer.
type ReviewHandler struct {
	reviews *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// HandleSubmit posts a new review on a cafe.
func (h *ReviewHandler) HandleSubmit(ctx context.Context, cafeID string, draft entities.Review) (*entities.Review, error) {
	return h.reviews.Submit(ctx, cafeID, draft)
}

// HandleEdit updates an existing review.
func (h *ReviewHandler) HandleEdit(ctx context.Context, reviewID string, update services.ReviewUpdate) (*entities.Review, error) {
	return h.reviews.Edit(ctx, reviewID, update)
}

// HandleDelete removes a review.
func (h *ReviewHandler) HandleDelete(ctx context.Context, reviewID string) error {
	return h.reviews.Delete(ctx, reviewID)
}

// HandleToggleHelpful adjusts a review's helpful count.
func (h *ReviewHandler) HandleToggleHelpful(ctx context.Context, reviewID string, helpful bool) (*entities.Review, error) {
	return h.reviews.ToggleHelpful(ctx, reviewID, helpful)
}

// HandleRespond attaches the business reply to a review.
func (h *ReviewHandler) HandleRespond(ctx context.Context, reviewID, author, text string) (*entities.Review, error) {
	return h.reviews.Respond(ctx, reviewID, author, text)
}

// HandleReport flags a review for moderation.
func (h *ReviewHandler) HandleReport(ctx context.Context, reviewID string) error {
	return h.reviews.Report(ctx, reviewID)
}

// HandleApprove marks a reported review as approved.
func (h *ReviewHandler) HandleApprove(ctx context.Context, reviewID string) error {
	return h.reviews.Approve(ctx, reviewID)
}

// HandleListForCafe returns all reviews referencing a cafe.
func (h *ReviewHandler) HandleListForCafe(ctx context.Context, cafeID string) ([]entities.Review, error) {
	return h.reviews.ListForCafe(ctx, cafeID)
}

// HandleListForUser returns all reviews written by a user.
func (h *ReviewHandler) HandleListForUser(ctx context.Context, userID string) ([]entities.Review, error) {
	return h.reviews.ListForUser(ctx, userID)
}
