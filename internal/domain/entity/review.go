package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a business. There is deliberately no
// uniqueness constraint on (reviewer, business): a reviewer may leave several
// reviews for the same business.
type Review struct {
	ID             uuid.UUID `json:"id"`
	BusinessUserID uuid.UUID `json:"business_user"` // The reviewed business user.
	ReviewerID     uuid.UUID `json:"reviewer"`      // Always the acting customer, never taken from the payload.
	Rating         int       `json:"rating"`        // Integer in [MinRating, MaxRating].
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RatingValid reports whether the review's rating is within bounds.
func (r *Review) RatingValid() bool {
	return r.Rating >= MinRating && r.Rating <= MaxRating
}
