// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for account persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, profile included.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by username, profile included.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user together with its profile.
	Create(ctx context.Context, user *entity.User) error

	// DeleteGuestsBefore removes guest accounts created before the cutoff and
	// returns how many were deleted.
	DeleteGuestsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
