package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. No uniqueness constraint on
// (reviewer, business): repeat reviews are allowed.
type ReviewModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BusinessUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	ReviewerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating         int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Description    string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
