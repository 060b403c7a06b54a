package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProfileType represents the role a profile carries in the marketplace.
type ProfileType string

const (
	// ProfileTypeBusiness indicates a business account that publishes offers.
	ProfileTypeBusiness ProfileType = "business"
	// ProfileTypeCustomer indicates a customer account that places orders.
	ProfileTypeCustomer ProfileType = "customer"
)

// String returns the string representation of the ProfileType.
func (t ProfileType) String() string {
	return string(t)
}

// IsValid checks if the ProfileType is a valid value.
func (t ProfileType) IsValid() bool {
	switch t {
	case ProfileTypeBusiness, ProfileTypeCustomer:
		return true
	default:
		return false
	}
}

// Profile extends a User with marketplace-facing information. It is created
// automatically when the account is created and lives exactly as long as it.
type Profile struct {
	UserID       uuid.UUID   `json:"user_id"` // Foreign key linking this profile to its User.
	Type         ProfileType `json:"type"`
	Location     string      `json:"location"`
	Tel          string      `json:"tel"`
	Description  string      `json:"description"`
	WorkingHours string      `json:"working_hours"`
	Avatar       string      `json:"avatar"`   // Opaque reference to a stored profile image.
	IsGuest      bool        `json:"is_guest"` // Set for throwaway guest accounts, cleaned up periodically.
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
