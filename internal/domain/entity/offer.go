package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Offer is a published service listing owned by a single business user.
// Deleting an offer removes its details and their features with it.
type Offer struct {
	ID          uuid.UUID      `json:"id"`
	CreatorID   uuid.UUID      `json:"creator_id"` // The business user that owns this offer.
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Details     []*OfferDetail `json:"details"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// MinPrice returns the lowest detail price, or 0 when the offer has no details.
func (o *Offer) MinPrice() float64 {
	var min float64
	for i, d := range o.Details {
		if i == 0 || d.Price < min {
			min = d.Price
		}
	}

	return min
}

// MinDeliveryTime returns the shortest delivery time across details in days,
// or 0 when the offer has no details.
func (o *Offer) MinDeliveryTime() int {
	var min int
	for i, d := range o.Details {
		if i == 0 || d.DeliveryTimeInDays < min {
			min = d.DeliveryTimeInDays
		}
	}

	return min
}

// UnlimitedRevisions is the conventional value for a detail that places no
// limit on revision rounds.
const UnlimitedRevisions = -1

// OfferDetail is one purchasable tier of an offer (typically basic, standard
// or premium, though the tier label is free-form).
type OfferDetail struct {
	ID                 uuid.UUID  `json:"id"`
	OfferID            uuid.UUID  `json:"offer_id"`
	OfferType          string     `json:"offer_type"` // Tier label, e.g. "basic", "standard", "premium".
	Title              string     `json:"title"`
	Revisions          int        `json:"revisions"` // UnlimitedRevisions (-1) means no limit.
	DeliveryTimeInDays int        `json:"delivery_time_in_days"`
	Price              float64    `json:"price"`
	Features           []*Feature `json:"features"`
}

// FeatureDescriptions returns the detail's feature texts in stored order.
func (d *OfferDetail) FeatureDescriptions() []string {
	out := make([]string, 0, len(d.Features))
	for _, f := range d.Features {
		out = append(out, f.Description)
	}

	return out
}

// Feature is a single bullet point describing what an offer detail includes.
type Feature struct {
	ID            uuid.UUID `json:"id"`
	OfferDetailID uuid.UUID `json:"offer_detail_id"`
	Description   string    `json:"description"`
	Position      int       `json:"position"` // Insertion order within the detail.
}

// CleanFeatureList trims every entry and drops blank or whitespace-only ones,
// preserving the relative order of the survivors. Blank features are never
// persisted.
func CleanFeatureList(raw []string) []string {
	cleaned := make([]string, 0, len(raw))
	for _, s := range raw {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}

	return cleaned
}
