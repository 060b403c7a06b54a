// Package model holds the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username     string    `gorm:"type:varchar(150);unique;not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Profile *ProfileModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ProfileModel mirrors the 'profiles' table. UserID references users.id (UUID).
// One profile per user, created together with the account.
type ProfileModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type         string    `gorm:"type:varchar(20);not null;index"`
	Location     string    `gorm:"type:varchar(255)"`
	Tel          string    `gorm:"type:varchar(50)"`
	Description  string    `gorm:"type:text"`
	WorkingHours string    `gorm:"type:varchar(100)"`
	Avatar       string    `gorm:"type:varchar(255)"`
	IsGuest      bool      `gorm:"not null;default:false;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
