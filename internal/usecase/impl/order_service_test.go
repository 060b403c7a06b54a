package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"coderr/internal/domain/authz"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	mockRepo "coderr/internal/mocks/repository"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	t.Helper()

	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return orderServiceFixtures{
		service:   NewOrderService(txManager, logger),
		txManager: txManager,
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	customer := authz.ForUser(uuid.New(), entity.ProfileTypeCustomer)

	t.Run("snapshots the detail onto the order", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		businessID := uuid.New()
		offer := &entity.Offer{ID: uuid.New(), CreatorID: businessID}
		detail := &entity.OfferDetail{
			ID:                 uuid.New(),
			OfferID:            offer.ID,
			OfferType:          "premium",
			Title:              "Logo Design Premium",
			Revisions:          entity.UnlimitedRevisions,
			DeliveryTimeInDays: 5,
			Price:              499.99,
			Features:           []*entity.Feature{{Description: "Logo design"}},
		}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockOfferRepo := mockRepo.NewMockOfferRepository(t)
				mockOrderRepo := mockRepo.NewMockOrderRepository(t)

				mockFactory.EXPECT().OfferRepo().Return(mockOfferRepo)
				mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

				mockOfferRepo.EXPECT().FindDetailByID(ctx, detail.ID).Return(detail, nil)
				mockOfferRepo.EXPECT().FindByID(ctx, offer.ID).Return(offer, nil)

				mockOrderRepo.EXPECT().
					Create(ctx, mock.AnythingOfType("*entity.Order")).
					Run(func(ctx context.Context, order *entity.Order) {
						assert.Equal(t, customer.UserID, order.CustomerID)
						assert.Equal(t, businessID, order.BusinessUserID)
						assert.Equal(t, entity.OrderStatusInProgress, order.Status)
						assert.Equal(t, "Logo Design Premium", order.Title)
						assert.Equal(t, 499.99, order.Price)
						assert.Equal(t, []string{"Logo design"}, order.Features)
					}).
					Return(nil)

				return fn(mockFactory)
			})

		order, err := fx.service.CreateOrder(ctx, customer, &usecase.CreateOrderInput{OfferDetailID: detail.ID})

		require.NoError(t, err)
		assert.Equal(t, detail.ID, order.OfferDetailID)
	})

	t.Run("business actor may not place orders", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		business := authz.ForUser(uuid.New(), entity.ProfileTypeBusiness)

		order, err := fx.service.CreateOrder(ctx, business, &usecase.CreateOrderInput{OfferDetailID: uuid.New()})

		assert.Nil(t, order)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("unknown detail is a validation failure", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		detailID := uuid.New()

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockOfferRepo := mockRepo.NewMockOfferRepository(t)

				mockFactory.EXPECT().OfferRepo().Return(mockOfferRepo)
				mockOfferRepo.EXPECT().FindDetailByID(ctx, detailID).Return(nil, repository.ErrOfferDetailNotFound)

				return fn(mockFactory)
			})

		order, err := fx.service.CreateOrder(ctx, customer, &usecase.CreateOrderInput{OfferDetailID: detailID})

		assert.Nil(t, order)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("participant may read the order", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		customerID := uuid.New()
		order := &entity.Order{ID: uuid.New(), CustomerID: customerID, BusinessUserID: uuid.New()}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockOrderRepo := mockRepo.NewMockOrderRepository(t)

				mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
				mockOrderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

				return fn(mockFactory)
			})

		found, err := fx.service.GetOrder(ctx, authz.ForUser(customerID, entity.ProfileTypeCustomer), order.ID)

		require.NoError(t, err)
		assert.Equal(t, order, found)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		order := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), BusinessUserID: uuid.New()}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockOrderRepo := mockRepo.NewMockOrderRepository(t)

				mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
				mockOrderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

				return fn(mockFactory)
			})

		found, err := fx.service.GetOrder(ctx, authz.ForUser(uuid.New(), entity.ProfileTypeCustomer), order.ID)

		assert.Nil(t, found)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("business actor lists received orders", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		businessID := uuid.New()
		expected := []*entity.Order{{ID: uuid.New(), BusinessUserID: businessID}}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockOrderRepo := mockRepo.NewMockOrderRepository(t)

				mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
				mockOrderRepo.EXPECT().ListByBusiness(ctx, businessID).Return(expected, nil)

				return fn(mockFactory)
			})

		orders, err := fx.service.ListOrders(ctx, authz.ForUser(businessID, entity.ProfileTypeBusiness))

		require.NoError(t, err)
		assert.Equal(t, expected, orders)
	})

	t.Run("customer actor lists placed orders", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		customerID := uuid.New()

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockOrderRepo := mockRepo.NewMockOrderRepository(t)

				mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
				mockOrderRepo.EXPECT().ListByCustomer(ctx, customerID).Return([]*entity.Order{}, nil)

				return fn(mockFactory)
			})

		orders, err := fx.service.ListOrders(ctx, authz.ForUser(customerID, entity.ProfileTypeCustomer))

		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("anonymous actor is unauthenticated", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)

		orders, err := fx.service.ListOrders(ctx, authz.Anonymous())

		assert.Nil(t, orders)
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("completing an order refreshes the counters", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		customerID := uuid.New()
		order := &entity.Order{
			ID:             uuid.New(),
			CustomerID:     customerID,
			BusinessUserID: uuid.New(),
			Status:         entity.OrderStatusInProgress,
		}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockOrderRepo := mockRepo.NewMockOrderRepository(t)
				mockStatsRepo := mockRepo.NewMockStatsRepository(t)

				mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
				mockFactory.EXPECT().StatsRepo().Return(mockStatsRepo)

				mockOrderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
				mockOrderRepo.EXPECT().UpdateStatus(ctx, order.ID, entity.OrderStatusCompleted).Return(nil)
				mockStatsRepo.EXPECT().Recompute(ctx).Return(&entity.PlatformStats{}, nil)

				return fn(mockFactory)
			})

		updated, err := fx.service.UpdateOrderStatus(ctx, authz.ForUser(customerID, entity.ProfileTypeCustomer), order.ID, entity.OrderStatusCompleted)

		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusCompleted, updated.Status)
	})

	t.Run("cancelling does not touch the counters", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		customerID := uuid.New()
		order := &entity.Order{
			ID:             uuid.New(),
			CustomerID:     customerID,
			BusinessUserID: uuid.New(),
			Status:         entity.OrderStatusInProgress,
		}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockOrderRepo := mockRepo.NewMockOrderRepository(t)

				mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
				mockOrderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
				mockOrderRepo.EXPECT().UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled).Return(nil)

				return fn(mockFactory)
			})

		updated, err := fx.service.UpdateOrderStatus(ctx, authz.ForUser(customerID, entity.ProfileTypeCustomer), order.ID, entity.OrderStatusCancelled)

		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusCancelled, updated.Status)
	})

	t.Run("unknown status is a validation failure", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)

		updated, err := fx.service.UpdateOrderStatus(ctx, authz.ForUser(uuid.New(), entity.ProfileTypeCustomer), uuid.New(), entity.OrderStatus("shipped"))

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		order := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), BusinessUserID: uuid.New()}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockOrderRepo := mockRepo.NewMockOrderRepository(t)

				mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
				mockOrderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

				return fn(mockFactory)
			})

		updated, err := fx.service.UpdateOrderStatus(ctx, authz.ForUser(uuid.New(), entity.ProfileTypeCustomer), order.ID, entity.OrderStatusCompleted)

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})
}

func TestOrderService_Counts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	businessUser := func(id uuid.UUID) *entity.User {
		return &entity.User{ID: id, Profile: &entity.Profile{UserID: id, Type: entity.ProfileTypeBusiness}}
	}

	t.Run("counts in-progress orders for a business", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		businessID := uuid.New()

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)
				mockOrderRepo := mockRepo.NewMockOrderRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

				mockUserRepo.EXPECT().FindByID(ctx, businessID).Return(businessUser(businessID), nil)
				mockOrderRepo.EXPECT().
					CountByBusinessAndStatus(ctx, businessID, entity.OrderStatusInProgress).
					Return(int64(4), nil)

				return fn(mockFactory)
			})

		count, err := fx.service.CountInProgress(ctx, businessID)

		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("counts completed orders for a business", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		businessID := uuid.New()

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)
				mockOrderRepo := mockRepo.NewMockOrderRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

				mockUserRepo.EXPECT().FindByID(ctx, businessID).Return(businessUser(businessID), nil)
				mockOrderRepo.EXPECT().
					CountByBusinessAndStatus(ctx, businessID, entity.OrderStatusCompleted).
					Return(int64(9), nil)

				return fn(mockFactory)
			})

		count, err := fx.service.CountCompleted(ctx, businessID)

		require.NoError(t, err)
		assert.Equal(t, int64(9), count)
	})

	t.Run("unknown business user is not found", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		businessID := uuid.New()

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockUserRepo.EXPECT().FindByID(ctx, businessID).Return(nil, repository.ErrUserNotFound)

				return fn(mockFactory)
			})

		count, err := fx.service.CountInProgress(ctx, businessID)

		assert.Equal(t, int64(0), count)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("customer target is a validation failure", func(t *testing.T) {
		t.Parallel()

		fx := createTestOrderService(t)
		customerID := uuid.New()
		customer := &entity.User{ID: customerID, Profile: &entity.Profile{UserID: customerID, Type: entity.ProfileTypeCustomer}}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockUserRepo.EXPECT().FindByID(ctx, customerID).Return(customer, nil)

				return fn(mockFactory)
			})

		count, err := fx.service.CountCompleted(ctx, customerID)

		assert.Equal(t, int64(0), count)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}
