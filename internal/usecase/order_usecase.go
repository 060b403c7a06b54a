package usecase

import (
	"context"

	"coderr/internal/domain/authz"
	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for order operations.
type OrderUsecase interface {
	// CreateOrder places an order for one offer detail, snapshotting the
	// detail's purchasable fields. Customers only.
	CreateOrder(ctx context.Context, actor authz.Actor, input *CreateOrderInput) (*entity.Order, error)

	// GetOrder retrieves a single order. Participants only.
	GetOrder(ctx context.Context, actor authz.Actor, id uuid.UUID) (*entity.Order, error)

	// ListOrders retrieves the actor's orders, newest first: orders placed for
	// a customer, orders received for a business.
	ListOrders(ctx context.Context, actor authz.Actor) ([]*entity.Order, error)

	// UpdateOrderStatus moves an order to a new status. Participants only.
	// Completing an order refreshes the platform counters in the same
	// transaction.
	UpdateOrderStatus(ctx context.Context, actor authz.Actor, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	// CountInProgress returns how many in-progress orders a business has.
	// The business user must exist and carry the business role.
	CountInProgress(ctx context.Context, businessUserID uuid.UUID) (int64, error)

	// CountCompleted returns how many completed orders a business has.
	// The business user must exist and carry the business role.
	CountCompleted(ctx context.Context, businessUserID uuid.UUID) (int64, error)
}

// --- Input DTOs ---

// CreateOrderInput defines the data required to place an order.
type CreateOrderInput struct {
	OfferDetailID uuid.UUID `json:"offer_detail_id" validate:"required"`
}
