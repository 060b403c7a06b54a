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

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateReview records a customer's rating of a business. The reviewer field
// is taken from the actor, never from the payload.
func (srv *reviewService) CreateReview(ctx context.Context, actor authz.Actor, input *usecase.CreateReviewInput) (*entity.Review, error) {
	if decision := authz.Can(actor, authz.ActionCreate, authz.Resource{Kind: authz.KindReview}); !decision.Allowed {
		return nil, decision.Reason
	}

	review := &entity.Review{
		BusinessUserID: input.BusinessUserID,
		ReviewerID:     actor.UserID,
		Rating:         input.Rating,
		Description:    input.Description,
	}
	if !review.RatingValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "rating must be between 1 and 5")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		target, err := repoFactory.UserRepo().FindByID(ctx, input.BusinessUserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrValidationFailed, "business user does not exist")
			}

			return errors.Wrap(err, "failed to find business user")
		}
		if !target.IsBusiness() {
			return errors.Wrap(domainerrors.ErrValidationFailed, "reviews can only target business accounts")
		}

		if err := repoFactory.ReviewRepo().Create(ctx, review); err != nil {
			return errors.Wrap(err, "failed to create review")
		}

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("review created", "reviewID", review.ID, "businessID", review.BusinessUserID, "rating", review.Rating)

	return review, nil
}

// GetReview retrieves a single review.
func (srv *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var review *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ReviewRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "review not found")
			}

			return errors.Wrap(err, "failed to find review")
		}
		review = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// ListReviews retrieves reviews matching the filter, newest first.
func (srv *reviewService) ListReviews(ctx context.Context, filter *usecase.ReviewListFilter) ([]*entity.Review, error) {
	repoFilter := repository.ReviewFilter{}
	if filter != nil {
		repoFilter.BusinessUserID = filter.BusinessUserID
		repoFilter.ReviewerID = filter.ReviewerID
	}

	var reviews []*entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ReviewRepo().List(ctx, repoFilter)
		if err != nil {
			return errors.Wrap(err, "failed to list reviews")
		}
		reviews = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// ListForBusiness retrieves the reviews a business user has received. An
// unknown user id is not-found; a known user without the business role is a
// validation failure. The distinction is deliberate and load-bearing for
// clients.
func (srv *reviewService) ListForBusiness(ctx context.Context, businessUserID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review

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

		reviews, err = repoFactory.ReviewRepo().List(ctx, repository.ReviewFilter{
			BusinessUserID: &businessUserID,
		})
		if err != nil {
			return errors.Wrap(err, "failed to list reviews")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// ListForReviewer retrieves the reviews a customer has written, with the same
// id-vs-role error split as the business side.
func (srv *reviewService) ListForReviewer(ctx context.Context, reviewerID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByID(ctx, reviewerID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "reviewer not found")
			}

			return errors.Wrap(err, "failed to find reviewer")
		}
		if !user.IsCustomer() {
			return errors.Wrap(domainerrors.ErrValidationFailed, "user is not a customer account")
		}

		reviews, err = repoFactory.ReviewRepo().List(ctx, repository.ReviewFilter{
			ReviewerID: &reviewerID,
		})
		if err != nil {
			return errors.Wrap(err, "failed to list reviews")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// UpdateReview patches a review's rating or description. Reviewer only.
func (srv *reviewService) UpdateReview(ctx context.Context, actor authz.Actor, id uuid.UUID, input *usecase.UpdateReviewInput) (*entity.Review, error) {
	var review *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		found, err := reviewRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "review not found")
			}

			return errors.Wrap(err, "failed to find review")
		}

		if decision := authz.Can(actor, authz.ActionUpdate, authz.Resource{
			Kind:    authz.KindReview,
			OwnerID: found.ReviewerID,
		}); !decision.Allowed {
			return decision.Reason
		}

		if input.Rating != nil {
			found.Rating = *input.Rating
			if !found.RatingValid() {
				return errors.Wrap(domainerrors.ErrValidationFailed, "rating must be between 1 and 5")
			}
		}
		if input.Description != nil {
			found.Description = *input.Description
		}

		if err := reviewRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update review")
		}
		review = found

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("review updated", "reviewID", id)

	return review, nil
}

// DeleteReview removes a review. Reviewer only.
func (srv *reviewService) DeleteReview(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		found, err := reviewRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "review not found")
			}

			return errors.Wrap(err, "failed to find review")
		}

		if decision := authz.Can(actor, authz.ActionDelete, authz.Resource{
			Kind:    authz.KindReview,
			OwnerID: found.ReviewerID,
		}); !decision.Allowed {
			return decision.Reason
		}

		if err := reviewRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete review")
		}

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.logger.Info("review deleted", "reviewID", id)

	return nil
}
