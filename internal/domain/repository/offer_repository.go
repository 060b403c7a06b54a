package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Sentinel errors for catalog lookups.
var (
	ErrOfferNotFound       = errors.New("offer not found")
	ErrOfferDetailNotFound = errors.New("offer detail not found")
)

// OfferFilter narrows offer listings. Nil fields are absent filters.
type OfferFilter struct {
	CreatorID *uuid.UUID
	// MaxDeliveryTime keeps offers having at least one detail with a delivery
	// time less than or equal to this many days.
	MaxDeliveryTime *int
}

// OfferRepository defines the operations for offer, detail and feature persistence.
// Offer deletion cascades to details and features at the schema level.
type OfferRepository interface {
	// Create persists a new offer without details.
	Create(ctx context.Context, offer *entity.Offer) error

	// FindByID retrieves an offer with its details and their features.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// List retrieves offers matching the filter, newest first, details included.
	List(ctx context.Context, filter OfferFilter) ([]*entity.Offer, error)

	// Update modifies an offer's own columns, not its details.
	Update(ctx context.Context, offer *entity.Offer) error

	// Delete removes an offer; details and features go with it.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateDetail persists a new detail with its features.
	CreateDetail(ctx context.Context, detail *entity.OfferDetail) error

	// FindDetailByID retrieves a detail with its features.
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error)

	// ListDetails retrieves all details with their features.
	ListDetails(ctx context.Context) ([]*entity.OfferDetail, error)

	// UpdateDetail modifies a detail's own columns, not its features.
	UpdateDetail(ctx context.Context, detail *entity.OfferDetail) error

	// DeleteDetail removes a detail and its features.
	DeleteDetail(ctx context.Context, id uuid.UUID) error

	// ReplaceFeatures deletes all features of a detail and inserts the given
	// descriptions in order. Last write wins; no merging with existing rows.
	ReplaceFeatures(ctx context.Context, detailID uuid.UUID, descriptions []string) error
}
