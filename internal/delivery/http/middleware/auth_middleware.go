// Package middleware contains the HTTP middleware for the delivery layer.
package middleware

import (
	"strings"

	"coderr/internal/domain/authz"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// actorContextKey is where the resolved actor lives on the echo context.
const actorContextKey = "actor"

// AuthMiddleware resolves the acting identity from the Authorization header.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate requires a valid bearer token and stores the actor on the
// context. Requests without a usable identity never reach the handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := m.resolve(c)
		if !ok {
			return domainerrors.ErrUnauthenticated
		}

		c.Set(actorContextKey, actor)

		return next(c)
	}
}

// AuthenticateOptional resolves the actor when a token is present and falls
// back to the anonymous actor otherwise. Read endpoints use this so that
// public browsing works without credentials.
func (m *AuthMiddleware) AuthenticateOptional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if actor, ok := m.resolve(c); ok {
			c.Set(actorContextKey, actor)
		} else {
			c.Set(actorContextKey, authz.Anonymous())
		}

		return next(c)
	}
}

func (m *AuthMiddleware) resolve(c echo.Context) (authz.Actor, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return authz.Anonymous(), false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return authz.Anonymous(), false
	}

	claims, err := m.tokenSvc.ValidateToken(tokenString)
	if err != nil {
		return authz.Anonymous(), false
	}

	return authz.ForUser(claims.UserID, claims.ProfileType), true
}

// ActorFromContext returns the actor placed by the middleware, anonymous when
// none was set.
func ActorFromContext(c echo.Context) authz.Actor {
	if actor, ok := c.Get(actorContextKey).(authz.Actor); ok {
		return actor
	}

	return authz.Anonymous()
}
