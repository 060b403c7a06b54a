package model

import (
	"time"

	"github.com/google/uuid"
)

// OfferModel mirrors the 'offers' table. Deleting an offer cascades to its
// details, and through them to their features.
type OfferModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Details []*OfferDetailModel `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OfferModel) TableName() string {
	return "offers"
}

// OfferDetailModel mirrors the 'offer_details' table. One row per purchasable
// tier of an offer.
type OfferDetailModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OfferID            uuid.UUID `gorm:"type:uuid;not null;index"`
	OfferType          string    `gorm:"type:varchar(50);not null"`
	Title              string    `gorm:"type:varchar(255);not null"`
	Revisions          int       `gorm:"not null"`
	DeliveryTimeInDays int       `gorm:"not null"`
	Price              float64   `gorm:"type:numeric(10,2);not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Features []*FeatureModel `gorm:"foreignKey:OfferDetailID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OfferDetailModel) TableName() string {
	return "offer_details"
}

// FeatureModel mirrors the 'features' table. Position preserves the order the
// features were submitted in.
type FeatureModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OfferDetailID uuid.UUID `gorm:"type:uuid;not null;index"`
	Description   string    `gorm:"type:text;not null"`
	Position      int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (FeatureModel) TableName() string {
	return "features"
}
