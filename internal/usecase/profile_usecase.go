package usecase

import (
	"context"

	"coderr/internal/domain/authz"
	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile operations.
type ProfileUsecase interface {
	// GetProfile retrieves a user together with its profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile patches the profile owned by userID. Self-service only;
	// the role is fixed at account creation and never changes here.
	UpdateProfile(ctx context.Context, actor authz.Actor, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)

	// ListBusinessProfiles retrieves every business profile.
	ListBusinessProfiles(ctx context.Context) ([]*entity.Profile, error)

	// ListCustomerProfiles retrieves every customer profile.
	ListCustomerProfiles(ctx context.Context) ([]*entity.Profile, error)
}

// --- Input DTOs ---

// UpdateProfileInput defines a partial profile update. Nil fields are untouched.
type UpdateProfileInput struct {
	Location     *string `json:"location,omitempty"`
	Tel          *string `json:"tel,omitempty"`
	Description  *string `json:"description,omitempty"`
	WorkingHours *string `json:"working_hours,omitempty"`
	Avatar       *string `json:"avatar,omitempty"`
}
