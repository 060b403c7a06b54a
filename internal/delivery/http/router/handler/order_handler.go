package handler

import (
	"log/slog"
	"net/http"

	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/response"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

// CreateOrder handles order placement.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var input usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), middleware.ActorFromContext(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// ListOrders handles the actor's order listing.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context(), middleware.ActorFromContext(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// GetOrder handles a single order lookup for a participant.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	order, err := h.uc.GetOrder(c.Request().Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// updateOrderStatusInput is the only mutable order field.
type updateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus handles an order status change.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var input updateOrderStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.UpdateOrderStatus(c.Request().Context(), middleware.ActorFromContext(c), id, entity.OrderStatus(input.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// CountInProgress reports how many in-progress orders a business has.
func (h *OrderHandler) CountInProgress(c echo.Context) error {
	businessID, err := parseBusinessUserParam(c)
	if err != nil {
		return err
	}

	count, err := h.uc.CountInProgress(c.Request().Context(), businessID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"order_count": count}, "")
}

// CountCompleted reports how many completed orders a business has.
func (h *OrderHandler) CountCompleted(c echo.Context) error {
	businessID, err := parseBusinessUserParam(c)
	if err != nil {
		return err
	}

	count, err := h.uc.CountCompleted(c.Request().Context(), businessID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"completed_order_count": count}, "")
}

func parseBusinessUserParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("business_user_id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("business_user_id must be a UUID")
	}

	return id, nil
}
