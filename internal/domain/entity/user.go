// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the account identity. Every user owns exactly one Profile, created
// together with the account.
type User struct {
	ID           uuid.UUID `json:"id"`       // The unique identifier for the user.
	Username     string    `json:"username"` // Login identifier, unique across the platform.
	Email        string    `json:"email"`    // The user's contact email.
	PasswordHash string    `json:"-"`        // Bcrypt hash of the user's password. Never serialized.
	Profile      *Profile  `json:"profile"`  // The role-carrying profile. Nil only before first load.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsBusiness reports whether the user's profile carries the business role.
func (u *User) IsBusiness() bool {
	return u.Profile != nil && u.Profile.Type == ProfileTypeBusiness
}

// IsCustomer reports whether the user's profile carries the customer role.
func (u *User) IsCustomer() bool {
	return u.Profile != nil && u.Profile.Type == ProfileTypeCustomer
}
