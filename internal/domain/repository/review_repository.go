package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review id does not resolve.
var ErrReviewNotFound = errors.New("review not found")

// ReviewFilter narrows review listings. Nil fields are absent filters.
type ReviewFilter struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
}

// ReviewRepository defines the operations for review persistence.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// FindByID retrieves a single review.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// List retrieves reviews matching the filter, newest first.
	List(ctx context.Context, filter ReviewFilter) ([]*entity.Review, error)

	// Update modifies an existing review's rating and description.
	Update(ctx context.Context, review *entity.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error
}
