package impl

import (
	"context"
	"log/slog"
	"strings"

	"coderr/internal/domain/authz"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateOffer publishes a new offer. Each nested detail is created inside its
// own error boundary: a detail that fails validation or persistence is logged
// and skipped, and the offer itself still succeeds.
func (srv *catalogService) CreateOffer(ctx context.Context, actor authz.Actor, input *usecase.CreateOfferInput) (*entity.Offer, error) {
	if decision := authz.Can(actor, authz.ActionCreate, authz.Resource{Kind: authz.KindOffer}); !decision.Allowed {
		return nil, decision.Reason
	}

	offer := &entity.Offer{
		CreatorID:   actor.UserID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
	}
	if offer.Title == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "offer title is required")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		if err := offerRepo.Create(ctx, offer); err != nil {
			return errors.Wrap(err, "failed to create offer")
		}

		for i, spec := range input.Details {
			detail, err := buildDetail(offer.ID, spec)
			if err != nil {
				srv.logger.Warn("skipping invalid offer detail",
					"offerID", offer.ID, "index", i, "error", err)

				continue
			}

			if err := offerRepo.CreateDetail(ctx, detail); err != nil {
				srv.logger.Warn("skipping unpersistable offer detail",
					"offerID", offer.ID, "index", i, "error", err)

				continue
			}

			offer.Details = append(offer.Details, detail)
		}

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("offer created", "offerID", offer.ID, "details", len(offer.Details))

	return offer, nil
}

// buildDetail validates one detail spec and converts it to an entity. Any
// problem here counts as a per-detail failure, not a request failure.
func buildDetail(offerID uuid.UUID, spec *usecase.OfferDetailSpec) (*entity.OfferDetail, error) {
	if spec == nil {
		return nil, errors.New("detail spec is nil")
	}
	if strings.TrimSpace(spec.OfferType) == "" {
		return nil, errors.New("detail tier label is required")
	}
	if strings.TrimSpace(spec.Title) == "" {
		return nil, errors.New("detail title is required")
	}
	if spec.Revisions < entity.UnlimitedRevisions {
		return nil, errors.New("revisions below the unlimited sentinel")
	}
	if spec.DeliveryTimeInDays < 0 {
		return nil, errors.New("delivery time must not be negative")
	}

	price, err := spec.Price.Float64()
	if err != nil {
		return nil, errors.Wrap(err, "price is not a number")
	}
	if price < 0 {
		return nil, errors.New("price must not be negative")
	}

	detail := &entity.OfferDetail{
		OfferID:            offerID,
		OfferType:          strings.TrimSpace(spec.OfferType),
		Title:              strings.TrimSpace(spec.Title),
		Revisions:          spec.Revisions,
		DeliveryTimeInDays: spec.DeliveryTimeInDays,
		Price:              price,
	}

	for i, desc := range entity.CleanFeatureList(spec.Features) {
		detail.Features = append(detail.Features, &entity.Feature{
			Description: desc,
			Position:    i,
		})
	}

	return detail, nil
}

// GetOffer retrieves one offer with details and features.
func (srv *catalogService) GetOffer(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offer *entity.Offer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OfferRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "offer not found")
			}

			return errors.Wrap(err, "failed to find offer")
		}
		offer = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return offer, nil
}

// ListOffers retrieves offers matching the filter, newest first.
func (srv *catalogService) ListOffers(ctx context.Context, filter *usecase.OfferListFilter) ([]*entity.Offer, error) {
	repoFilter := repository.OfferFilter{}
	if filter != nil {
		repoFilter.CreatorID = filter.CreatorID
		repoFilter.MaxDeliveryTime = filter.MaxDeliveryTime
	}

	var offers []*entity.Offer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OfferRepo().List(ctx, repoFilter)
		if err != nil {
			return errors.Wrap(err, "failed to list offers")
		}
		offers = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return offers, nil
}

// UpdateOffer patches an offer's own fields and optionally its details,
// matched by tier label. Only the owning business may update.
func (srv *catalogService) UpdateOffer(ctx context.Context, actor authz.Actor, id uuid.UUID, input *usecase.UpdateOfferInput) (*entity.Offer, error) {
	var updated *entity.Offer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		offer, err := offerRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "offer not found")
			}

			return errors.Wrap(err, "failed to find offer")
		}

		if decision := authz.Can(actor, authz.ActionUpdate, authz.Resource{
			Kind:    authz.KindOffer,
			OwnerID: offer.CreatorID,
		}); !decision.Allowed {
			return decision.Reason
		}

		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title == "" {
				return errors.Wrap(domainerrors.ErrValidationFailed, "offer title must not be blank")
			}
			offer.Title = title
		}
		if input.Description != nil {
			offer.Description = *input.Description
		}

		if err := offerRepo.Update(ctx, offer); err != nil {
			return errors.Wrap(err, "failed to update offer")
		}

		for _, edit := range input.Details {
			if edit == nil {
				return errors.Wrap(domainerrors.ErrValidationFailed, "detail edit must not be null")
			}
			detail := findDetailByType(offer, edit.OfferType)
			if detail == nil {
				return errors.Wrap(domainerrors.ErrValidationFailed, "no detail with this tier label")
			}

			if err := srv.applyDetailPatch(ctx, offerRepo, detail, &edit.OfferDetailPatch); err != nil {
				return err
			}
		}

		reloaded, err := offerRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to reload offer")
		}
		updated = reloaded

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("offer updated", "offerID", id)

	return updated, nil
}

func findDetailByType(offer *entity.Offer, offerType string) *entity.OfferDetail {
	for _, d := range offer.Details {
		if d.OfferType == offerType {
			return d
		}
	}

	return nil
}

// applyDetailPatch applies a partial detail update. Unlike creation, a bad
// value here fails the whole request: the caller addressed the detail
// explicitly and silence would hide the rejection.
func (srv *catalogService) applyDetailPatch(ctx context.Context, offerRepo repository.OfferRepository, detail *entity.OfferDetail, patch *usecase.OfferDetailPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return errors.Wrap(domainerrors.ErrValidationFailed, "detail title must not be blank")
		}
		detail.Title = title
	}
	if patch.Revisions != nil {
		if *patch.Revisions < entity.UnlimitedRevisions {
			return errors.Wrap(domainerrors.ErrValidationFailed, "revisions below the unlimited sentinel")
		}
		detail.Revisions = *patch.Revisions
	}
	if patch.DeliveryTimeInDays != nil {
		if *patch.DeliveryTimeInDays < 0 {
			return errors.Wrap(domainerrors.ErrValidationFailed, "delivery time must not be negative")
		}
		detail.DeliveryTimeInDays = *patch.DeliveryTimeInDays
	}
	if patch.Price != nil {
		price, err := patch.Price.Float64()
		if err != nil {
			return errors.Wrap(domainerrors.ErrValidationFailed, "price is not a number")
		}
		if price < 0 {
			return errors.Wrap(domainerrors.ErrValidationFailed, "price must not be negative")
		}
		detail.Price = price
	}

	if err := offerRepo.UpdateDetail(ctx, detail); err != nil {
		if errors.Is(err, repository.ErrOfferDetailNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "offer detail not found")
		}

		return errors.Wrap(err, "failed to update offer detail")
	}

	// A nil Features pointer keeps the stored features. A non-nil pointer
	// replaces them wholesale, even with an empty list.
	if patch.Features != nil {
		cleaned := entity.CleanFeatureList(*patch.Features)
		if err := offerRepo.ReplaceFeatures(ctx, detail.ID, cleaned); err != nil {
			return errors.Wrap(err, "failed to replace features")
		}
	}

	return nil
}

// DeleteOffer removes an offer with its details and features.
func (srv *catalogService) DeleteOffer(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		offer, err := offerRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "offer not found")
			}

			return errors.Wrap(err, "failed to find offer")
		}

		if decision := authz.Can(actor, authz.ActionDelete, authz.Resource{
			Kind:    authz.KindOffer,
			OwnerID: offer.CreatorID,
		}); !decision.Allowed {
			return decision.Reason
		}

		if err := offerRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete offer")
		}

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.logger.Info("offer deleted", "offerID", id)

	return nil
}

// GetOfferDetail retrieves one detail with its features.
func (srv *catalogService) GetOfferDetail(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error) {
	var detail *entity.OfferDetail

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OfferRepo().FindDetailByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferDetailNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "offer detail not found")
			}

			return errors.Wrap(err, "failed to find offer detail")
		}
		detail = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// ListOfferDetails retrieves every detail with its features.
func (srv *catalogService) ListOfferDetails(ctx context.Context) ([]*entity.OfferDetail, error) {
	var details []*entity.OfferDetail

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OfferRepo().ListDetails(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list offer details")
		}
		details = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return details, nil
}

// UpdateOfferDetail patches a single detail, addressed directly by id.
func (srv *catalogService) UpdateOfferDetail(ctx context.Context, actor authz.Actor, id uuid.UUID, input *usecase.OfferDetailPatch) (*entity.OfferDetail, error) {
	var updated *entity.OfferDetail

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		detail, err := offerRepo.FindDetailByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferDetailNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "offer detail not found")
			}

			return errors.Wrap(err, "failed to find offer detail")
		}

		owner, err := srv.detailOwner(ctx, offerRepo, detail)
		if err != nil {
			return err
		}

		if decision := authz.Can(actor, authz.ActionUpdate, authz.Resource{
			Kind:    authz.KindOfferDetail,
			OwnerID: owner,
		}); !decision.Allowed {
			return decision.Reason
		}

		if err := srv.applyDetailPatch(ctx, offerRepo, detail, input); err != nil {
			return err
		}

		reloaded, err := offerRepo.FindDetailByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to reload offer detail")
		}
		updated = reloaded

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("offer detail updated", "detailID", id)

	return updated, nil
}

// DeleteOfferDetail removes a detail and its features.
func (srv *catalogService) DeleteOfferDetail(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		detail, err := offerRepo.FindDetailByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferDetailNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "offer detail not found")
			}

			return errors.Wrap(err, "failed to find offer detail")
		}

		owner, err := srv.detailOwner(ctx, offerRepo, detail)
		if err != nil {
			return err
		}

		if decision := authz.Can(actor, authz.ActionDelete, authz.Resource{
			Kind:    authz.KindOfferDetail,
			OwnerID: owner,
		}); !decision.Allowed {
			return decision.Reason
		}

		if err := offerRepo.DeleteDetail(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete offer detail")
		}

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.logger.Info("offer detail deleted", "detailID", id)

	return nil
}

// detailOwner resolves the creator of the detail's parent offer.
func (srv *catalogService) detailOwner(ctx context.Context, offerRepo repository.OfferRepository, detail *entity.OfferDetail) (uuid.UUID, error) {
	offer, err := offerRepo.FindByID(ctx, detail.OfferID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return uuid.Nil, errors.Wrap(domainerrors.ErrNotFound, "parent offer not found")
		}

		return uuid.Nil, errors.Wrap(err, "failed to find parent offer")
	}

	return offer.CreatorID, nil
}
