package postgres

import (
	"context"
	"math"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// statsRepository implements the domain's StatsRepository interface using GORM.
// All counters live in a single row that is rewritten wholesale on recompute.
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository is the constructor for statsRepository.
func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// GetOrCreate returns the singleton row, creating it with zeroed counters when
// it does not exist yet.
func (repo *statsRepository) GetOrCreate(ctx context.Context) (*entity.PlatformStats, error) {
	var statsM model.PlatformStatsModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", model.StatsSingletonID).
		First(&statsM).Error
	if err == nil {
		return toStatsDomain(&statsM), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to load platform stats")
	}

	// Lazy creation. DoNothing keeps a concurrent creator from failing here.
	fresh := model.NewPlatformStatsModel()
	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fresh).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create platform stats")
	}

	if err := repo.db.WithContext(ctx).
		Where("id = ?", model.StatsSingletonID).
		First(&statsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to reload platform stats")
	}

	return toStatsDomain(&statsM), nil
}

// Recompute fully re-derives every counter from current table contents and
// persists the result. Being a pure function of store state, concurrent
// recomputations converge on the same value regardless of ordering.
func (repo *statsRepository) Recompute(ctx context.Context) (*entity.PlatformStats, error) {
	db := repo.db.WithContext(ctx)

	var offerCount int64
	if err := db.Model(&model.OfferModel{}).Count(&offerCount).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count offers")
	}

	var reviewCount int64
	if err := db.Model(&model.ReviewModel{}).Count(&reviewCount).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count reviews")
	}

	var businessCount int64
	if err := db.Model(&model.ProfileModel{}).
		Where("type = ?", entity.ProfileTypeBusiness.String()).
		Count(&businessCount).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count business profiles")
	}

	var completedOrders int64
	if err := db.Model(&model.OrderModel{}).
		Where("status = ?", entity.OrderStatusCompleted.String()).
		Count(&completedOrders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count completed orders")
	}

	// AVG over zero rows yields NULL, hence the COALESCE.
	var avgRating float64
	if err := db.Model(&model.ReviewModel{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avgRating).Error; err != nil {
		return nil, errors.Wrap(err, "failed to average review ratings")
	}

	statsM := model.NewPlatformStatsModel()
	statsM.OfferCount = offerCount
	statsM.ReviewCount = reviewCount
	statsM.BusinessProfileCount = businessCount
	statsM.AverageRating = math.Round(avgRating*10) / 10
	statsM.TotalOffers = offerCount
	statsM.TotalCompletedOrders = completedOrders

	// Upsert the singleton row so recompute also covers first use.
	if err := db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"offer_count",
				"review_count",
				"business_profile_count",
				"average_rating",
				"total_offers",
				"total_completed_orders",
				"updated_at",
			}),
		}).
		Create(statsM).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to persist platform stats")
	}

	return toStatsDomain(statsM), nil
}

// toStatsDomain converts a GORM PlatformStatsModel to a domain PlatformStats entity.
func toStatsDomain(data *model.PlatformStatsModel) *entity.PlatformStats {
	if data == nil {
		return nil
	}

	return &entity.PlatformStats{
		OfferCount:           data.OfferCount,
		ReviewCount:          data.ReviewCount,
		BusinessProfileCount: data.BusinessProfileCount,
		AverageRating:        data.AverageRating,
		TotalOffers:          data.TotalOffers,
		TotalCompletedOrders: data.TotalCompletedOrders,
		UpdatedAt:            data.UpdatedAt,
	}
}
