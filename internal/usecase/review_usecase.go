package usecase

import (
	"context"

	"coderr/internal/domain/authz"
	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewUsecase defines the interface for review operations.
type ReviewUsecase interface {
	// CreateReview records a customer's rating of a business. The reviewer is
	// always the acting customer, regardless of what the payload claims.
	CreateReview(ctx context.Context, actor authz.Actor, input *CreateReviewInput) (*entity.Review, error)

	// GetReview retrieves a single review.
	GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// ListReviews retrieves reviews matching the filter, newest first.
	ListReviews(ctx context.Context, filter *ReviewListFilter) ([]*entity.Review, error)

	// ListForBusiness retrieves the reviews a business user has received.
	// An unknown user id is not-found; a known user without the business role
	// is a validation failure.
	ListForBusiness(ctx context.Context, businessUserID uuid.UUID) ([]*entity.Review, error)

	// ListForReviewer retrieves the reviews a customer has written. Unknown
	// user ids are not-found; a known user without the customer role is a
	// validation failure.
	ListForReviewer(ctx context.Context, reviewerID uuid.UUID) ([]*entity.Review, error)

	// UpdateReview patches a review's rating or description. Reviewer only.
	UpdateReview(ctx context.Context, actor authz.Actor, id uuid.UUID, input *UpdateReviewInput) (*entity.Review, error)

	// DeleteReview removes a review. Reviewer only.
	DeleteReview(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}

// --- Input DTOs ---

// CreateReviewInput defines the data required to leave a review.
type CreateReviewInput struct {
	BusinessUserID uuid.UUID `json:"business_user" validate:"required"`
	Rating         int       `json:"rating" validate:"required,gte=1,lte=5"`
	Description    string    `json:"description"`
}

// ReviewListFilter narrows review listings. Nil fields are absent filters.
type ReviewListFilter struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
}

// UpdateReviewInput defines a partial review update. Nil fields are untouched.
type UpdateReviewInput struct {
	Rating      *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Description *string `json:"description,omitempty"`
}
