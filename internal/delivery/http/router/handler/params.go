package handler

import (
	domainerrors "coderr/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// parseIDParam reads the ':id' path parameter as a UUID. A malformed id is a
// validation failure, not a not-found: the reference never names anything.
func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("id must be a UUID")
	}

	return id, nil
}
