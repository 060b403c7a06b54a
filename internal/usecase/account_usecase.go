// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountUsecase defines the interface for registration and login operations.
type AccountUsecase interface {
	// Register creates a user with its role-carrying profile and returns a
	// fresh access token.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and returns a fresh access token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GuestLogin provisions a throwaway account with the requested role and
	// returns a fresh access token for it.
	GuestLogin(ctx context.Context, input *GuestLoginInput) (*AuthOutput, error)

	// CleanupGuests removes guest accounts older than maxAge and returns how
	// many were deleted.
	CleanupGuests(ctx context.Context, maxAge time.Duration) (int64, error)
}

// --- Input DTOs ---

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Username         string `json:"username" validate:"required,min=3,max=150"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	RepeatedPassword string `json:"repeated_password" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=business customer"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// GuestLoginInput defines the data required to provision a guest account.
type GuestLoginInput struct {
	Type string `json:"type" validate:"required,oneof=business customer"`
}

// --- Output DTOs ---

// AuthOutput is the payload returned by every successful auth operation.
type AuthOutput struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserID   uuid.UUID `json:"user_id"`
}
