package usecase

import (
	"context"
	"encoding/json"

	"coderr/internal/domain/authz"
	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// CatalogUsecase defines the interface for offer and offer detail operations.
type CatalogUsecase interface {
	// CreateOffer publishes a new offer. Nested details are created best
	// effort: a detail that fails validation or persistence is logged and
	// skipped without failing the offer itself.
	CreateOffer(ctx context.Context, actor authz.Actor, input *CreateOfferInput) (*entity.Offer, error)

	// GetOffer retrieves one offer with details and features.
	GetOffer(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// ListOffers retrieves offers matching the filter, newest first.
	ListOffers(ctx context.Context, filter *OfferListFilter) ([]*entity.Offer, error)

	// UpdateOffer patches an offer's own fields and optionally its details,
	// matched by tier label. Owner only.
	UpdateOffer(ctx context.Context, actor authz.Actor, id uuid.UUID, input *UpdateOfferInput) (*entity.Offer, error)

	// DeleteOffer removes an offer with its details and features. Owner only.
	DeleteOffer(ctx context.Context, actor authz.Actor, id uuid.UUID) error

	// GetOfferDetail retrieves one detail with its features.
	GetOfferDetail(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error)

	// ListOfferDetails retrieves every detail with its features.
	ListOfferDetails(ctx context.Context) ([]*entity.OfferDetail, error)

	// UpdateOfferDetail patches a single detail. Owner of the parent offer only.
	UpdateOfferDetail(ctx context.Context, actor authz.Actor, id uuid.UUID, input *OfferDetailPatch) (*entity.OfferDetail, error)

	// DeleteOfferDetail removes a detail and its features. Owner of the parent
	// offer only.
	DeleteOfferDetail(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}

// --- Input DTOs ---

// CreateOfferInput defines the data required to publish an offer.
type CreateOfferInput struct {
	Title       string             `json:"title" validate:"required,max=255"`
	Description string             `json:"description"`
	Details     []*OfferDetailSpec `json:"details"`
}

// OfferDetailSpec describes one tier of a new offer. Price arrives as a raw
// JSON number so that a malformed value can be treated as a per-detail failure
// instead of a request-level decode error.
type OfferDetailSpec struct {
	OfferType          string      `json:"offer_type" validate:"required,max=50"`
	Title              string      `json:"title" validate:"required,max=255"`
	Revisions          int         `json:"revisions"`
	DeliveryTimeInDays int         `json:"delivery_time_in_days" validate:"gte=0"`
	Price              json.Number `json:"price"`
	Features           []string    `json:"features"`
}

// OfferListFilter narrows offer listings. Nil fields are absent filters.
type OfferListFilter struct {
	CreatorID       *uuid.UUID
	MaxDeliveryTime *int
}

// UpdateOfferInput defines a partial offer update. Nil fields are untouched.
// Details are matched to existing tiers by their tier label.
type UpdateOfferInput struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Details     []*OfferDetailEdit `json:"details,omitempty"`
}

// OfferDetailEdit is a partial update of one tier inside an offer update.
type OfferDetailEdit struct {
	OfferType string `json:"offer_type" validate:"required"`
	OfferDetailPatch
}

// OfferDetailPatch defines a partial detail update. Nil fields are untouched.
// A nil Features pointer keeps the existing features; a non-nil pointer
// replaces them wholesale, even when the slice is empty.
type OfferDetailPatch struct {
	Title              *string      `json:"title,omitempty"`
	Revisions          *int         `json:"revisions,omitempty"`
	DeliveryTimeInDays *int         `json:"delivery_time_in_days,omitempty"`
	Price              *json.Number `json:"price,omitempty"`
	Features           *[]string    `json:"features,omitempty"`
}
