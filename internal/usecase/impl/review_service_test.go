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

type reviewServiceFixtures struct {
	service   usecase.ReviewUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestReviewService(t *testing.T) reviewServiceFixtures {
	t.Helper()

	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return reviewServiceFixtures{
		service:   NewReviewService(txManager, logger),
		txManager: txManager,
	}
}

func TestReviewService_CreateReview(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	customer := authz.ForUser(uuid.New(), entity.ProfileTypeCustomer)

	businessUser := func(id uuid.UUID) *entity.User {
		return &entity.User{ID: id, Profile: &entity.Profile{UserID: id, Type: entity.ProfileTypeBusiness}}
	}

	t.Run("reviewer is always the acting customer", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		businessID := uuid.New()

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)
				mockReviewRepo := mockRepo.NewMockReviewRepository(t)
				mockStatsRepo := mockRepo.NewMockStatsRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockFactory.EXPECT().ReviewRepo().Return(mockReviewRepo)
				mockFactory.EXPECT().StatsRepo().Return(mockStatsRepo)

				mockUserRepo.EXPECT().FindByID(ctx, businessID).Return(businessUser(businessID), nil)
				mockReviewRepo.EXPECT().
					Create(ctx, mock.AnythingOfType("*entity.Review")).
					Run(func(ctx context.Context, review *entity.Review) {
						assert.Equal(t, customer.UserID, review.ReviewerID)
						assert.Equal(t, businessID, review.BusinessUserID)
						assert.Equal(t, 4, review.Rating)
					}).
					Return(nil)
				mockStatsRepo.EXPECT().Recompute(ctx).Return(&entity.PlatformStats{}, nil)

				return fn(mockFactory)
			})

		review, err := fx.service.CreateReview(ctx, customer, &usecase.CreateReviewInput{
			BusinessUserID: businessID,
			Rating:         4,
			Description:    "solide Arbeit",
		})

		require.NoError(t, err)
		assert.Equal(t, customer.UserID, review.ReviewerID)
	})

	t.Run("business actor may not create reviews", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		business := authz.ForUser(uuid.New(), entity.ProfileTypeBusiness)

		review, err := fx.service.CreateReview(ctx, business, &usecase.CreateReviewInput{
			BusinessUserID: uuid.New(),
			Rating:         4,
		})

		assert.Nil(t, review)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("out-of-range rating is a validation failure", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)

		review, err := fx.service.CreateReview(ctx, customer, &usecase.CreateReviewInput{
			BusinessUserID: uuid.New(),
			Rating:         6,
		})

		assert.Nil(t, review)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("target must exist", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
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

		review, err := fx.service.CreateReview(ctx, customer, &usecase.CreateReviewInput{
			BusinessUserID: businessID,
			Rating:         3,
		})

		assert.Nil(t, review)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("target must carry the business role", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		targetID := uuid.New()
		target := &entity.User{ID: targetID, Profile: &entity.Profile{UserID: targetID, Type: entity.ProfileTypeCustomer}}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockUserRepo.EXPECT().FindByID(ctx, targetID).Return(target, nil)

				return fn(mockFactory)
			})

		review, err := fx.service.CreateReview(ctx, customer, &usecase.CreateReviewInput{
			BusinessUserID: targetID,
			Rating:         3,
		})

		assert.Nil(t, review)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestReviewService_ListForBusiness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns the reviews a business received", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		businessID := uuid.New()
		user := &entity.User{ID: businessID, Profile: &entity.Profile{UserID: businessID, Type: entity.ProfileTypeBusiness}}
		expected := []*entity.Review{{ID: uuid.New(), BusinessUserID: businessID, Rating: 5}}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)
				mockReviewRepo := mockRepo.NewMockReviewRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockFactory.EXPECT().ReviewRepo().Return(mockReviewRepo)

				mockUserRepo.EXPECT().FindByID(ctx, businessID).Return(user, nil)
				mockReviewRepo.EXPECT().
					List(ctx, mock.AnythingOfType("repository.ReviewFilter")).
					Run(func(ctx context.Context, filter repository.ReviewFilter) {
						require.NotNil(t, filter.BusinessUserID)
						assert.Equal(t, businessID, *filter.BusinessUserID)
						assert.Nil(t, filter.ReviewerID)
					}).
					Return(expected, nil)

				return fn(mockFactory)
			})

		reviews, err := fx.service.ListForBusiness(ctx, businessID)

		require.NoError(t, err)
		assert.Equal(t, expected, reviews)
	})

	t.Run("unknown user id is not found", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
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

		reviews, err := fx.service.ListForBusiness(ctx, businessID)

		assert.Nil(t, reviews)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("customer id is a validation failure", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		customerID := uuid.New()
		user := &entity.User{ID: customerID, Profile: &entity.Profile{UserID: customerID, Type: entity.ProfileTypeCustomer}}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockUserRepo.EXPECT().FindByID(ctx, customerID).Return(user, nil)

				return fn(mockFactory)
			})

		reviews, err := fx.service.ListForBusiness(ctx, customerID)

		assert.Nil(t, reviews)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestReviewService_ListForReviewer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns the reviews a customer wrote", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		reviewerID := uuid.New()
		user := &entity.User{ID: reviewerID, Profile: &entity.Profile{UserID: reviewerID, Type: entity.ProfileTypeCustomer}}
		expected := []*entity.Review{{ID: uuid.New(), ReviewerID: reviewerID, Rating: 4}}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)
				mockReviewRepo := mockRepo.NewMockReviewRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockFactory.EXPECT().ReviewRepo().Return(mockReviewRepo)

				mockUserRepo.EXPECT().FindByID(ctx, reviewerID).Return(user, nil)
				mockReviewRepo.EXPECT().
					List(ctx, mock.AnythingOfType("repository.ReviewFilter")).
					Run(func(ctx context.Context, filter repository.ReviewFilter) {
						require.NotNil(t, filter.ReviewerID)
						assert.Equal(t, reviewerID, *filter.ReviewerID)
						assert.Nil(t, filter.BusinessUserID)
					}).
					Return(expected, nil)

				return fn(mockFactory)
			})

		reviews, err := fx.service.ListForReviewer(ctx, reviewerID)

		require.NoError(t, err)
		assert.Equal(t, expected, reviews)
	})

	t.Run("unknown reviewer id is not found", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		reviewerID := uuid.New()

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockUserRepo.EXPECT().FindByID(ctx, reviewerID).Return(nil, repository.ErrUserNotFound)

				return fn(mockFactory)
			})

		reviews, err := fx.service.ListForReviewer(ctx, reviewerID)

		assert.Nil(t, reviews)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("business id is a validation failure", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		businessID := uuid.New()
		user := &entity.User{ID: businessID, Profile: &entity.Profile{UserID: businessID, Type: entity.ProfileTypeBusiness}}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockUserRepo.EXPECT().FindByID(ctx, businessID).Return(user, nil)

				return fn(mockFactory)
			})

		reviews, err := fx.service.ListForReviewer(ctx, businessID)

		assert.Nil(t, reviews)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestReviewService_UpdateReview(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reviewerID := uuid.New()
	reviewer := authz.ForUser(reviewerID, entity.ProfileTypeCustomer)

	t.Run("reviewer may patch rating and description", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		review := &entity.Review{ID: uuid.New(), ReviewerID: reviewerID, Rating: 3, Description: "ok"}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockReviewRepo := mockRepo.NewMockReviewRepository(t)
				mockStatsRepo := mockRepo.NewMockStatsRepository(t)

				mockFactory.EXPECT().ReviewRepo().Return(mockReviewRepo)
				mockFactory.EXPECT().StatsRepo().Return(mockStatsRepo)

				mockReviewRepo.EXPECT().FindByID(ctx, review.ID).Return(review, nil)
				mockReviewRepo.EXPECT().
					Update(ctx, mock.AnythingOfType("*entity.Review")).
					Run(func(ctx context.Context, updated *entity.Review) {
						assert.Equal(t, 5, updated.Rating)
						assert.Equal(t, "nachgebessert", updated.Description)
					}).
					Return(nil)
				mockStatsRepo.EXPECT().Recompute(ctx).Return(&entity.PlatformStats{}, nil)

				return fn(mockFactory)
			})

		updated, err := fx.service.UpdateReview(ctx, reviewer, review.ID, &usecase.UpdateReviewInput{
			Rating:      intPtr(5),
			Description: strPtr("nachgebessert"),
		})

		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
	})

	t.Run("another customer is forbidden", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		review := &entity.Review{ID: uuid.New(), ReviewerID: reviewerID, Rating: 3}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockReviewRepo := mockRepo.NewMockReviewRepository(t)

				mockFactory.EXPECT().ReviewRepo().Return(mockReviewRepo)
				mockReviewRepo.EXPECT().FindByID(ctx, review.ID).Return(review, nil)

				return fn(mockFactory)
			})

		other := authz.ForUser(uuid.New(), entity.ProfileTypeCustomer)
		updated, err := fx.service.UpdateReview(ctx, other, review.ID, &usecase.UpdateReviewInput{Rating: intPtr(1)})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("patched rating is revalidated", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		review := &entity.Review{ID: uuid.New(), ReviewerID: reviewerID, Rating: 3}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockReviewRepo := mockRepo.NewMockReviewRepository(t)

				mockFactory.EXPECT().ReviewRepo().Return(mockReviewRepo)
				mockReviewRepo.EXPECT().FindByID(ctx, review.ID).Return(review, nil)

				return fn(mockFactory)
			})

		updated, err := fx.service.UpdateReview(ctx, reviewer, review.ID, &usecase.UpdateReviewInput{Rating: intPtr(0)})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestReviewService_DeleteReview(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reviewerID := uuid.New()

	t.Run("reviewer deletes and the counters refresh", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		review := &entity.Review{ID: uuid.New(), ReviewerID: reviewerID, Rating: 2}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockReviewRepo := mockRepo.NewMockReviewRepository(t)
				mockStatsRepo := mockRepo.NewMockStatsRepository(t)

				mockFactory.EXPECT().ReviewRepo().Return(mockReviewRepo)
				mockFactory.EXPECT().StatsRepo().Return(mockStatsRepo)

				mockReviewRepo.EXPECT().FindByID(ctx, review.ID).Return(review, nil)
				mockReviewRepo.EXPECT().Delete(ctx, review.ID).Return(nil)
				mockStatsRepo.EXPECT().Recompute(ctx).Return(&entity.PlatformStats{}, nil)

				return fn(mockFactory)
			})

		err := fx.service.DeleteReview(ctx, authz.ForUser(reviewerID, entity.ProfileTypeCustomer), review.ID)

		require.NoError(t, err)
	})

	t.Run("missing review is not found", func(t *testing.T) {
		t.Parallel()

		fx := createTestReviewService(t)
		reviewID := uuid.New()

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockReviewRepo := mockRepo.NewMockReviewRepository(t)

				mockFactory.EXPECT().ReviewRepo().Return(mockReviewRepo)
				mockReviewRepo.EXPECT().FindByID(ctx, reviewID).Return(nil, repository.ErrReviewNotFound)

				return fn(mockFactory)
			})

		err := fx.service.DeleteReview(ctx, authz.ForUser(reviewerID, entity.ProfileTypeCustomer), reviewID)

		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})
}
