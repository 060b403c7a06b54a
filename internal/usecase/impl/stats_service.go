package impl

import (
	"context"
	"log/slog"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/pkg/errors"
)

// statsService implements the StatsUsecase interface.
type statsService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.StatsUsecase {
	return &statsService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetBaseInfo returns the public slice of the platform counter singleton.
// Reading never recomputes; it serves whatever the last mutation left behind,
// creating the zeroed row on first use.
func (srv *statsService) GetBaseInfo(ctx context.Context) (*usecase.BaseInfoOutput, error) {
	var stats *entity.PlatformStats

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.StatsRepo().GetOrCreate(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load platform stats")
		}
		stats = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &usecase.BaseInfoOutput{
		ReviewCount:          stats.ReviewCount,
		AverageRating:        stats.AverageRating,
		BusinessProfileCount: stats.BusinessProfileCount,
		OfferCount:           stats.OfferCount,
	}, nil
}
