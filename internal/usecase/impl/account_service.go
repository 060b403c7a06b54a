// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const guestUsernamePrefix = "guest"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenService
	logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager: txManager,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a user with its role-carrying profile and returns a fresh
// access token. Registering a business account changes the public business
// count, so the platform counters are refreshed in the same transaction.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if input.Password != input.RepeatedPassword {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "passwords do not match")
	}

	profileType := entity.ProfileType(input.Type)
	if !profileType.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown profile type")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Profile: &entity.Profile{
			Type: profileType,
		},
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("account registered", "userID", user.ID, "type", profileType)

	return srv.issueToken(user)
}

// Login verifies credentials and returns a fresh access token.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByUsername(ctx, input.Username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown username")
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	srv.logger.Debug("login succeeded", "userID", user.ID)

	return srv.issueToken(user)
}

// GuestLogin provisions a throwaway account with the requested role. The
// username carries a random suffix so repeated guest logins never collide.
func (srv *accountService) GuestLogin(ctx context.Context, input *usecase.GuestLoginInput) (*usecase.AuthOutput, error) {
	profileType := entity.ProfileType(input.Type)
	if !profileType.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown profile type")
	}

	suffix := uuid.New()
	// Guests never log in with a password; hash a random secret anyway so the
	// column constraint holds and the hash is unguessable.
	hash, err := srv.hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash guest secret")
	}

	user := &entity.User{
		Username:     guestUsernamePrefix + "_" + profileType.String() + "_" + suffix.String()[:8],
		Email:        guestUsernamePrefix + "+" + suffix.String()[:8] + "@example.com",
		PasswordHash: hash,
		Profile: &entity.Profile{
			Type:    profileType,
			IsGuest: true,
		},
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create guest user")
		}

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("guest account provisioned", "userID", user.ID, "type", profileType)

	return srv.issueToken(user)
}

// CleanupGuests removes guest accounts older than maxAge. The counters are
// refreshed in the same transaction since guest businesses count publicly.
func (srv *accountService) CleanupGuests(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)

	var deleted int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		n, err := repoFactory.UserRepo().DeleteGuestsBefore(ctx, cutoff)
		if err != nil {
			return errors.Wrap(err, "failed to delete expired guests")
		}
		deleted = n

		if deleted == 0 {
			return nil
		}

		if _, err := repoFactory.StatsRepo().Recompute(ctx); err != nil {
			return errors.Wrap(err, "failed to recompute platform stats")
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		srv.logger.Info("expired guest accounts removed", "count", deleted, "cutoff", cutoff)
	}

	return deleted, nil
}

func (srv *accountService) issueToken(user *entity.User) (*usecase.AuthOutput, error) {
	var profileType entity.ProfileType
	if user.Profile != nil {
		profileType = user.Profile.Type
	}

	token, err := srv.tokens.GenerateAccessToken(user.ID, profileType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AuthOutput{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}
