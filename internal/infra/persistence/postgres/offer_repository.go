package postgres

import (
	"context"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// offerRepository implements the domain's OfferRepository interface using GORM.
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository is the constructor for offerRepository.
func NewOfferRepository(db *gorm.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

// preloadDetails attaches details and their features in stable order.
func (repo *offerRepository) preloadDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("offer_details.created_at ASC")
		}).
		Preload("Details.Features", func(db *gorm.DB) *gorm.DB {
			return db.Order("features.position ASC")
		})
}

// Create persists a new offer without details. Details are created one by one
// afterwards so that a single bad detail does not take the offer down with it.
func (repo *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	offerM := fromOfferDomain(offer)
	offerM.Details = nil

	if err := repo.db.WithContext(ctx).Create(offerM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid creator reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required offer information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create offer")
	}

	offer.ID = offerM.ID
	offer.CreatedAt = offerM.CreatedAt
	offer.UpdatedAt = offerM.UpdatedAt

	return nil
}

// FindByID retrieves an offer with its details and their features.
func (repo *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offerM model.OfferModel
	err := repo.preloadDetails(repo.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&offerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer by id")
	}

	return toOfferDomain(&offerM), nil
}

// List retrieves offers matching the filter, newest first, details included.
func (repo *offerRepository) List(ctx context.Context, filter repository.OfferFilter) ([]*entity.Offer, error) {
	query := repo.preloadDetails(repo.db.WithContext(ctx)).
		Model(&model.OfferModel{})

	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.MaxDeliveryTime != nil {
		// Keep offers with at least one detail at or under the requested delivery time.
		query = query.Where(
			"EXISTS (SELECT 1 FROM offer_details WHERE offer_details.offer_id = offers.id AND offer_details.delivery_time_in_days <= ?)",
			*filter.MaxDeliveryTime,
		)
	}

	var offerModels []*model.OfferModel
	if err := query.Order("created_at DESC").Find(&offerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	offers := make([]*entity.Offer, 0, len(offerModels))
	for _, offerM := range offerModels {
		offers = append(offers, toOfferDomain(offerM))
	}

	return offers, nil
}

// Update modifies an offer's own columns, not its details.
func (repo *offerRepository) Update(ctx context.Context, offer *entity.Offer) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OfferModel{}).
		Where("id = ?", offer.ID).
		Updates(map[string]any{
			"title":       offer.Title,
			"description": offer.Description,
		})
	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required offer information")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update offer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// Delete removes an offer. Details and features go with it via the cascade constraints.
func (repo *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OfferModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete offer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// CreateDetail persists a new detail with its features.
func (repo *offerRepository) CreateDetail(ctx context.Context, detail *entity.OfferDetail) error {
	detailM := fromOfferDetailDomain(detail)

	if err := repo.db.WithContext(ctx).Create(detailM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid offer reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required detail information")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("detail values out of range")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create offer detail")
	}

	detail.ID = detailM.ID
	for i, featureM := range detailM.Features {
		if i < len(detail.Features) {
			detail.Features[i].ID = featureM.ID
			detail.Features[i].OfferDetailID = featureM.OfferDetailID
		}
	}

	return nil
}

// FindDetailByID retrieves a detail with its features.
func (repo *offerRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error) {
	var detailM model.OfferDetailModel
	err := repo.db.WithContext(ctx).
		Preload("Features", func(db *gorm.DB) *gorm.DB {
			return db.Order("features.position ASC")
		}).
		Where("id = ?", id).
		First(&detailM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferDetailNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer detail by id")
	}

	return toOfferDetailDomain(&detailM), nil
}

// ListDetails retrieves all details with their features.
func (repo *offerRepository) ListDetails(ctx context.Context) ([]*entity.OfferDetail, error) {
	var detailModels []*model.OfferDetailModel
	err := repo.db.WithContext(ctx).
		Preload("Features", func(db *gorm.DB) *gorm.DB {
			return db.Order("features.position ASC")
		}).
		Order("created_at DESC").
		Find(&detailModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list offer details")
	}

	details := make([]*entity.OfferDetail, 0, len(detailModels))
	for _, detailM := range detailModels {
		details = append(details, toOfferDetailDomain(detailM))
	}

	return details, nil
}

// UpdateDetail modifies a detail's own columns, not its features.
func (repo *offerRepository) UpdateDetail(ctx context.Context, detail *entity.OfferDetail) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OfferDetailModel{}).
		Where("id = ?", detail.ID).
		Updates(map[string]any{
			"offer_type":            detail.OfferType,
			"title":                 detail.Title,
			"revisions":             detail.Revisions,
			"delivery_time_in_days": detail.DeliveryTimeInDays,
			"price":                 detail.Price,
		})
	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required detail information")
		}
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("detail values out of range")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update offer detail")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferDetailNotFound
	}

	return nil
}

// DeleteDetail removes a detail and its features.
func (repo *offerRepository) DeleteDetail(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OfferDetailModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete offer detail")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferDetailNotFound
	}

	return nil
}

// ReplaceFeatures deletes all features of a detail and inserts the given
// descriptions in order. Last write wins; nothing is merged.
func (repo *offerRepository) ReplaceFeatures(ctx context.Context, detailID uuid.UUID, descriptions []string) error {
	if err := repo.db.WithContext(ctx).
		Where("offer_detail_id = ?", detailID).
		Delete(&model.FeatureModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear features")
	}

	if len(descriptions) == 0 {
		return nil
	}

	featureModels := make([]*model.FeatureModel, 0, len(descriptions))
	for i, desc := range descriptions {
		featureModels = append(featureModels, &model.FeatureModel{
			OfferDetailID: detailID,
			Description:   desc,
			Position:      i,
		})
	}

	if err := repo.db.WithContext(ctx).Create(&featureModels).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrOfferDetailNotFound
		}

		return errors.Wrap(err, "failed to insert features")
	}

	return nil
}

// --- Mapper Functions ---

// toOfferDomain converts a GORM OfferModel to a domain Offer entity.
func toOfferDomain(data *model.OfferModel) *entity.Offer {
	if data == nil {
		return nil
	}

	details := make([]*entity.OfferDetail, 0, len(data.Details))
	for _, detailM := range data.Details {
		details = append(details, toOfferDetailDomain(detailM))
	}

	return &entity.Offer{
		ID:          data.ID,
		CreatorID:   data.CreatorID,
		Title:       data.Title,
		Description: data.Description,
		Details:     details,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromOfferDomain converts a domain Offer entity to a GORM OfferModel.
func fromOfferDomain(data *entity.Offer) *model.OfferModel {
	if data == nil {
		return nil
	}

	details := make([]*model.OfferDetailModel, 0, len(data.Details))
	for _, detail := range data.Details {
		details = append(details, fromOfferDetailDomain(detail))
	}

	return &model.OfferModel{
		ID:          data.ID,
		CreatorID:   data.CreatorID,
		Title:       data.Title,
		Description: data.Description,
		Details:     details,
	}
}

// toOfferDetailDomain converts a GORM OfferDetailModel to a domain OfferDetail entity.
func toOfferDetailDomain(data *model.OfferDetailModel) *entity.OfferDetail {
	if data == nil {
		return nil
	}

	features := make([]*entity.Feature, 0, len(data.Features))
	for _, featureM := range data.Features {
		features = append(features, &entity.Feature{
			ID:            featureM.ID,
			OfferDetailID: featureM.OfferDetailID,
			Description:   featureM.Description,
			Position:      featureM.Position,
		})
	}

	return &entity.OfferDetail{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		OfferType:          data.OfferType,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           features,
	}
}

// fromOfferDetailDomain converts a domain OfferDetail entity to a GORM OfferDetailModel.
func fromOfferDetailDomain(data *entity.OfferDetail) *model.OfferDetailModel {
	if data == nil {
		return nil
	}

	features := make([]*model.FeatureModel, 0, len(data.Features))
	for _, feature := range data.Features {
		features = append(features, &model.FeatureModel{
			ID:            feature.ID,
			OfferDetailID: feature.OfferDetailID,
			Description:   feature.Description,
			Position:      feature.Position,
		})
	}

	return &model.OfferDetailModel{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		OfferType:          data.OfferType,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           features,
	}
}
