package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"
	mockRepo "coderr/internal/mocks/repository"
	"coderr/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statsServiceFixtures struct {
	service   usecase.StatsUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestStatsService(t *testing.T) statsServiceFixtures {
	t.Helper()

	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return statsServiceFixtures{
		service:   NewStatsService(txManager, logger),
		txManager: txManager,
	}
}

func TestStatsService_GetBaseInfo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("exposes only the public counters", func(t *testing.T) {
		t.Parallel()

		fx := createTestStatsService(t)
		stats := &entity.PlatformStats{
			OfferCount:           12,
			ReviewCount:          30,
			BusinessProfileCount: 5,
			AverageRating:        4.3,
			TotalOffers:          14,
			TotalCompletedOrders: 7,
		}

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockStatsRepo := mockRepo.NewMockStatsRepository(t)

				mockFactory.EXPECT().StatsRepo().Return(mockStatsRepo)
				mockStatsRepo.EXPECT().GetOrCreate(ctx).Return(stats, nil)

				return fn(mockFactory)
			})

		out, err := fx.service.GetBaseInfo(ctx)

		require.NoError(t, err)
		assert.Equal(t, &usecase.BaseInfoOutput{
			ReviewCount:          30,
			AverageRating:        4.3,
			BusinessProfileCount: 5,
			OfferCount:           12,
		}, out)
	})

	t.Run("serves the zeroed row on a fresh platform", func(t *testing.T) {
		t.Parallel()

		fx := createTestStatsService(t)

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockStatsRepo := mockRepo.NewMockStatsRepository(t)

				mockFactory.EXPECT().StatsRepo().Return(mockStatsRepo)
				mockStatsRepo.EXPECT().GetOrCreate(ctx).Return(&entity.PlatformStats{}, nil)

				return fn(mockFactory)
			})

		out, err := fx.service.GetBaseInfo(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0.0, out.AverageRating)
		assert.Equal(t, int64(0), out.ReviewCount)
	})

	t.Run("propagates a load failure", func(t *testing.T) {
		t.Parallel()

		fx := createTestStatsService(t)
		dbErr := errors.New("connection reset")

		fx.txManager.EXPECT().
			Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
				mockFactory := mockRepo.NewMockRepositoryFactory(t)
				mockStatsRepo := mockRepo.NewMockStatsRepository(t)

				mockFactory.EXPECT().StatsRepo().Return(mockStatsRepo)
				mockStatsRepo.EXPECT().GetOrCreate(ctx).Return(nil, dbErr)

				return fn(mockFactory)
			})

		out, err := fx.service.GetBaseInfo(ctx)

		assert.Nil(t, out)
		assert.ErrorIs(t, err, dbErr)
	})
}
