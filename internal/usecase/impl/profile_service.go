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

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetProfile retrieves a user together with its profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile patches the profile owned by userID. Only the owner may
// update; the role column never changes here.
func (srv *profileService) UpdateProfile(ctx context.Context, actor authz.Actor, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if decision := authz.Can(actor, authz.ActionUpdate, authz.Resource{
		Kind:    authz.KindProfile,
		OwnerID: userID,
	}); !decision.Allowed {
		return nil, decision.Reason
	}

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}
		if found.Profile == nil {
			return errors.Wrap(domainerrors.ErrNotFound, "user has no profile")
		}

		if input.Location != nil {
			found.Profile.Location = *input.Location
		}
		if input.Tel != nil {
			found.Profile.Tel = *input.Tel
		}
		if input.Description != nil {
			found.Profile.Description = *input.Description
		}
		if input.WorkingHours != nil {
			found.Profile.WorkingHours = *input.WorkingHours
		}
		if input.Avatar != nil {
			found.Profile.Avatar = *input.Avatar
		}

		if err := repoFactory.ProfileRepo().Update(ctx, found.Profile); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("profile updated", "userID", userID)

	return user, nil
}

// ListBusinessProfiles retrieves every business profile.
func (srv *profileService) ListBusinessProfiles(ctx context.Context) ([]*entity.Profile, error) {
	return srv.listByType(ctx, entity.ProfileTypeBusiness)
}

// ListCustomerProfiles retrieves every customer profile.
func (srv *profileService) ListCustomerProfiles(ctx context.Context) ([]*entity.Profile, error) {
	return srv.listByType(ctx, entity.ProfileTypeCustomer)
}

func (srv *profileService) listByType(ctx context.Context, profileType entity.ProfileType) ([]*entity.Profile, error) {
	var profiles []*entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProfileRepo().ListByType(ctx, profileType)
		if err != nil {
			return errors.Wrap(err, "failed to list profiles")
		}
		profiles = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profiles, nil
}
