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

type profileServiceFixtures struct {
	service   usecase.ProfileUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	t.Helper()

	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return profileServiceFixtures{
		service:   NewProfileService(txManager, logger),
		txManager: txManager,
	}
}

func TestProfileService_GetProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns the user with its profile", func(t *testing.T) {
		t.Parallel()

		fx := createTestProfileService(t)
		userID := uuid.New()
		expected := &entity.User{
			ID:       userID,
			Username: "maria",
			Profile:  &entity.Profile{UserID: userID, Type: entity.ProfileTypeBusiness},
		}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockUserRepo.EXPECT().FindByID(ctx, userID).Return(expected, nil)

				return fn(mockFactory)
			})

		user, err := fx.service.GetProfile(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, expected, user)
	})

	t.Run("maps a missing user to not found", func(t *testing.T) {
		t.Parallel()

		fx := createTestProfileService(t)
		userID := uuid.New()

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockUserRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

				return fn(mockFactory)
			})

		user, err := fx.service.GetProfile(ctx, userID)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("owner patches only the provided fields", func(t *testing.T) {
		t.Parallel()

		fx := createTestProfileService(t)
		userID := uuid.New()
		user := &entity.User{
			ID: userID,
			Profile: &entity.Profile{
				UserID:   userID,
				Type:     entity.ProfileTypeBusiness,
				Location: "Berlin",
				Tel:      "030 1234",
			},
		}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockUserRepo := mockRepo.NewMockUserRepository(t)
				mockProfileRepo := mockRepo.NewMockProfileRepository(t)

				mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
				mockFactory.EXPECT().ProfileRepo().Return(mockProfileRepo)

				mockUserRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
				mockProfileRepo.EXPECT().
					Update(ctx, mock.AnythingOfType("*entity.Profile")).
					Run(func(ctx context.Context, profile *entity.Profile) {
						assert.Equal(t, "Hamburg", profile.Location)
						// Untouched fields keep their stored values.
						assert.Equal(t, "030 1234", profile.Tel)
						assert.Equal(t, entity.ProfileTypeBusiness, profile.Type)
					}).
					Return(nil)

				return fn(mockFactory)
			})

		actor := authz.ForUser(userID, entity.ProfileTypeBusiness)
		updated, err := fx.service.UpdateProfile(ctx, actor, userID, &usecase.UpdateProfileInput{
			Location: strPtr("Hamburg"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Hamburg", updated.Profile.Location)
	})

	t.Run("foreign profile update is forbidden before any lookup", func(t *testing.T) {
		t.Parallel()

		fx := createTestProfileService(t)
		actor := authz.ForUser(uuid.New(), entity.ProfileTypeCustomer)

		updated, err := fx.service.UpdateProfile(ctx, actor, uuid.New(), &usecase.UpdateProfileInput{
			Location: strPtr("Hamburg"),
		})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("anonymous update is unauthenticated", func(t *testing.T) {
		t.Parallel()

		fx := createTestProfileService(t)

		updated, err := fx.service.UpdateProfile(ctx, authz.Anonymous(), uuid.New(), &usecase.UpdateProfileInput{})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})
}

func TestProfileService_ListByRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("lists business profiles", func(t *testing.T) {
		t.Parallel()

		fx := createTestProfileService(t)
		expected := []*entity.Profile{{UserID: uuid.New(), Type: entity.ProfileTypeBusiness}}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockProfileRepo := mockRepo.NewMockProfileRepository(t)

				mockFactory.EXPECT().ProfileRepo().Return(mockProfileRepo)
				mockProfileRepo.EXPECT().ListByType(ctx, entity.ProfileTypeBusiness).Return(expected, nil)

				return fn(mockFactory)
			})

		profiles, err := fx.service.ListBusinessProfiles(ctx)

		require.NoError(t, err)
		assert.Equal(t, expected, profiles)
	})

	t.Run("lists customer profiles", func(t *testing.T) {
		t.Parallel()

		fx := createTestProfileService(t)

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockProfileRepo := mockRepo.NewMockProfileRepository(t)

				mockFactory.EXPECT().ProfileRepo().Return(mockProfileRepo)
				mockProfileRepo.EXPECT().ListByType(ctx, entity.ProfileTypeCustomer).Return([]*entity.Profile{}, nil)

				return fn(mockFactory)
			})

		profiles, err := fx.service.ListCustomerProfiles(ctx)

		require.NoError(t, err)
		assert.Empty(t, profiles)
	})
}
