package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the processing state of an order.
type OrderStatus string

const (
	// OrderStatusInProgress is the initial state of every order.
	OrderStatusInProgress OrderStatus = "in_progress"
	// OrderStatusCompleted marks an order as delivered and accepted.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled marks an order as abandoned by either party.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order records a customer purchasing one offer detail from a business.
// The pricing fields are copied from the detail at creation time so that
// later edits to the catalog do not change an already placed order.
type Order struct {
	ID             uuid.UUID   `json:"id"`
	CustomerID     uuid.UUID   `json:"customer_user"`  // Always a customer-type user, fixed at creation.
	BusinessUserID uuid.UUID   `json:"business_user"`  // Always a business-type user, fixed at creation.
	OfferDetailID  uuid.UUID   `json:"offer_detail_id"`
	Status         OrderStatus `json:"status"`

	// Snapshot of the offer detail at the moment the order was placed.
	Title              string   `json:"title"`
	OfferType          string   `json:"offer_type"`
	Revisions          int      `json:"revisions"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days"`
	Price              float64  `json:"price"`
	Features           []string `json:"features"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsParticipant reports whether the given user is one of the order's two parties.
func (o *Order) IsParticipant(userID uuid.UUID) bool {
	return o.CustomerID == userID || o.BusinessUserID == userID
}

// SnapshotFrom copies the purchasable fields of the given detail onto the order.
func (o *Order) SnapshotFrom(detail *OfferDetail) {
	o.OfferDetailID = detail.ID
	o.Title = detail.Title
	o.OfferType = detail.OfferType
	o.Revisions = detail.Revisions
	o.DeliveryTimeInDays = detail.DeliveryTimeInDays
	o.Price = detail.Price
	o.Features = detail.FeatureDescriptions()
}
