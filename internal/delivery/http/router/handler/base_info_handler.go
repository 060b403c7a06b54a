package handler

import (
	"log/slog"
	"net/http"

	"coderr/internal/delivery/http/response"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BaseInfoHandler serves the public platform counters.
type BaseInfoHandler struct {
	uc     usecase.StatsUsecase
	logger *slog.Logger
}

// NewBaseInfoHandler is the constructor for BaseInfoHandler, injected by Fx.
func NewBaseInfoHandler(uc usecase.StatsUsecase, logger *slog.Logger) *BaseInfoHandler {
	return &BaseInfoHandler{uc: uc, logger: logger}
}

// GetBaseInfo handles the public counter lookup.
func (h *BaseInfoHandler) GetBaseInfo(c echo.Context) error {
	info, err := h.uc.GetBaseInfo(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, info, "")
}
