package impl

import (
	"context"
	"log/slog"

	"coderr/internal/domain/authz"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateOrder places an order for one offer detail. The detail's purchasable
// fields are copied onto the order so later catalog edits never change it.
func (srv *orderService) CreateOrder(ctx context.Context, actor authz.Actor, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if decision := authz.Can(actor, authz.ActionCreate, authz.Resource{Kind: authz.KindOrder}); !decision.Allowed {
		return nil, decision.Reason
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		detail, err := offerRepo.FindDetailByID(ctx, input.OfferDetailID)
		if err != nil {
			if errors.Is(err, repository.ErrOfferDetailNotFound) {
				return errors.Wrap(domainerrors.ErrValidationFailed, "offer detail does not exist")
			}

			return errors.Wrap(err, "failed to find offer detail")
		}

		offer, err := offerRepo.FindByID(ctx, detail.OfferID)
		if err != nil {
			return errors.Wrap(err, "failed to find parent offer")
		}

		order = &entity.Order{
			CustomerID:     actor.UserID,
			BusinessUserID: offer.CreatorID,
			Status:         entity.OrderStatusInProgress,
		}
		order.SnapshotFrom(detail)

		if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("order placed", "orderID", order.ID, "customerID", order.CustomerID, "businessID", order.BusinessUserID)

	return order, nil
}

// GetOrder retrieves a single order for one of its two participants.
func (srv *orderService) GetOrder(ctx context.Context, actor authz.Actor, id uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}

		// Orders are private to their two parties, unlike the catalog.
		if !found.IsParticipant(actor.UserID) {
			return errors.Wrap(domainerrors.ErrForbidden, "not a participant of this order")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders retrieves the actor's orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context, actor authz.Actor) ([]*entity.Order, error) {
	if !actor.Authenticated {
		return nil, domainerrors.ErrUnauthenticated
	}

	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		var err error
		if actor.Type == entity.ProfileTypeBusiness {
			orders, err = orderRepo.ListByBusiness(ctx, actor.UserID)
		} else {
			orders, err = orderRepo.ListByCustomer(ctx, actor.UserID)
		}
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateOrderStatus moves an order to a new status. Completing an order feeds
// the completed-order counter, so the stats are refreshed in the same
// transaction as the status write.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, actor authz.Actor, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown order status")
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		found, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if decision := authz.Can(actor, authz.ActionUpdate, authz.Resource{
			Kind:         authz.KindOrder,
			Participants: []uuid.UUID{found.CustomerID, found.BusinessUserID},
		}); !decision.Allowed {
			return decision.Reason
		}

		if err := orderRepo.UpdateStatus(ctx, id, status); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}
		found.Status = status
		order = found

		if status == entity.OrderStatusCompleted {
			if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
				return errors.Wrap(err, "failed to recompute platform stats")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("order status updated", "orderID", id, "status", status)

	return order, nil
}

// CountInProgress returns how many in-progress orders a business has.
func (srv *orderService) CountInProgress(ctx context.Context, businessUserID uuid.UUID) (int64, error) {
	return srv.countForBusiness(ctx, businessUserID, entity.OrderStatusInProgress)
}

// CountCompleted returns how many completed orders a business has.
func (srv *orderService) CountCompleted(ctx context.Context, businessUserID uuid.UUID) (int64, error) {
	return srv.countForBusiness(ctx, businessUserID, entity.OrderStatusCompleted)
}

// countForBusiness checks that the target exists and carries the business role
// before counting: an unknown id is not-found, a customer id is a validation
// failure.
func (srv *orderService) countForBusiness(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error) {
	var count int64

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByID(ctx, businessUserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "business user not found")
			}

			return errors.Wrap(err, "failed to find business user")
		}
		if !user.IsBusiness() {
			return errors.Wrap(domainerrors.ErrValidationFailed, "user is not a business account")
		}

		count, err = repoFactory.OrderRepo().CountByBusinessAndStatus(ctx, businessUserID, status)
		if err != nil {
			return errors.Wrap(err, "failed to count orders")
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}
