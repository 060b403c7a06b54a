package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when no profile exists for the given user.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the operations for profile persistence.
type ProfileRepository interface {
	// FindByUserID retrieves the profile owned by the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// Update modifies an existing profile.
	Update(ctx context.Context, profile *entity.Profile) error

	// ListByType retrieves all profiles carrying the given role.
	ListByType(ctx context.Context, profileType entity.ProfileType) ([]*entity.Profile, error)
}
