package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order id does not resolve.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the operations for order persistence.
type OrderRepository interface {
	// Create persists a new order with its snapshot fields.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByCustomer retrieves orders placed by the given customer, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)

	// ListByBusiness retrieves orders received by the given business, newest first.
	ListByBusiness(ctx context.Context, businessUserID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatus sets the status of an existing order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// CountByBusinessAndStatus counts a business's orders in the given status.
	CountByBusinessAndStatus(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error)
}
