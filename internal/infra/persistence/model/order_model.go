package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderModel mirrors the 'orders' table. The title, offer type, revisions,
// delivery time, price and features columns are snapshots taken from the offer
// detail at creation time; they never change when the catalog does.
type OrderModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	BusinessUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	OfferDetailID  uuid.UUID `gorm:"type:uuid;not null"`
	Status         string    `gorm:"type:varchar(20);not null;index"`

	Title              string         `gorm:"type:varchar(255);not null"`
	OfferType          string         `gorm:"type:varchar(50);not null"`
	Revisions          int            `gorm:"not null"`
	DeliveryTimeInDays int            `gorm:"not null"`
	Price              float64        `gorm:"type:numeric(10,2);not null"`
	Features           pq.StringArray `gorm:"type:text[]"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
