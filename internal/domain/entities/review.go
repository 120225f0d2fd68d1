package entities

import (
	"fmt"
	"strings"
	"time"
)

// Review validation bounds.
const (
	MinReviewRating  = 1
	MaxReviewRating  = 5
	MinReviewTextLen = 10
	MaxReviewTextLen = 1000
	MaxReviewTitle   = 100
	MaxReviewTags    = 5
	MaxReviewImages  = 6
)

// BusinessResponse is a single reply from the cafe to a review.
type BusinessResponse struct {
	Author string    `json:"author"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}

// Review is a user-submitted review of a cafe. Reviews reference their
// cafe by id; the cafe does not own them.
type Review struct {
	ID               string            `json:"id"`
	CafeID           string            `json:"cafe_id"`
	UserID           string            `json:"user_id"`
	AuthorName       string            `json:"author_name,omitempty"`
	Rating           int               `json:"rating"`
	Title            string            `json:"title,omitempty"`
	Text             string            `json:"text"`
	Tags             []string          `json:"tags,omitempty"`
	Images           []string          `json:"images,omitempty"`
	HelpfulCount     int               `json:"helpful_count"`
	Reported         bool              `json:"reported,omitempty"`
	Approved         bool              `json:"approved,omitempty"`
	BusinessResponse *BusinessResponse `json:"business_response,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Validate checks the review against the creation-time invariants.
// It rejects before any write; a review that fails here is never persisted.
func (r *Review) Validate() error {
	if r.CafeID == "" {
		return fmt.Errorf("%w: cafe id is required", ErrInvalidInput)
	}
	if r.Rating < MinReviewRating || r.Rating > MaxReviewRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, MinReviewRating, MaxReviewRating)
	}
	if len(strings.TrimSpace(r.Text)) < MinReviewTextLen {
		return fmt.Errorf("%w: review text must be at least %d characters", ErrInvalidInput, MinReviewTextLen)
	}
	if len(r.Text) > MaxReviewTextLen {
		return fmt.Errorf("%w: review text must be at most %d characters", ErrInvalidInput, MaxReviewTextLen)
	}
	if len(r.Title) > MaxReviewTitle {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, MaxReviewTitle)
	}
	if len(r.Tags) > MaxReviewTags {
		return fmt.Errorf("%w: at most %d tags allowed", ErrInvalidInput, MaxReviewTags)
	}
	if len(r.Images) > MaxReviewImages {
		return fmt.Errorf("%w: at most %d images allowed", ErrInvalidInput, MaxReviewImages)
	}
	return nil
}
