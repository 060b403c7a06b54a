package service

import (
	"coderr/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the verified contents of an access token.
type Claims struct {
	UserID      uuid.UUID
	ProfileType entity.ProfileType
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a signed token carrying the user id and
	// profile type.
	GenerateAccessToken(userID uuid.UUID, profileType entity.ProfileType) (string, error)

	// ValidateToken checks a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
