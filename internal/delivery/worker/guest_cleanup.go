// Package worker contains background jobs that run alongside the API server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"coderr/config"
	"coderr/internal/usecase"

	"go.uber.org/fx"
)

const (
	defaultCleanupInterval = 1 * time.Hour
	defaultGuestMaxAge     = 24 * time.Hour
)

// GuestCleanupParams holds dependencies for the guest cleanup worker.
type GuestCleanupParams struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Account usecase.AccountUsecase
}

// guestCleanupWorker periodically removes expired guest accounts. Guest
// accounts are throwaway by definition; anything older than the configured
// age is deleted together with its profile.
type guestCleanupWorker struct {
	logger   *slog.Logger
	account  usecase.AccountUsecase
	maxAge   time.Duration
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewGuestCleanupWorker builds the worker and hooks it into the Fx lifecycle.
// With cleanup disabled in config, nothing is scheduled.
func NewGuestCleanupWorker(params GuestCleanupParams) *guestCleanupWorker {
	w := &guestCleanupWorker{
		logger:   params.Logger,
		account:  params.Account,
		maxAge:   defaultGuestMaxAge,
		interval: defaultCleanupInterval,
		done:     make(chan struct{}),
	}

	enabled := false
	if cfg := params.Config.GuestCleanup; cfg != nil {
		enabled = cfg.Enabled
		if cfg.MaxAge > 0 {
			w.maxAge = cfg.MaxAge
		}
		if cfg.Interval > 0 {
			w.interval = cfg.Interval
		}
	}

	if !enabled {
		params.Logger.Debug("guest cleanup disabled")

		return w
	}

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			runCtx, cancel := context.WithCancel(context.Background())
			w.cancel = cancel
			go w.run(runCtx)

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			if w.cancel == nil {
				return nil
			}
			w.cancel()

			select {
			case <-w.done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})

	return w
}

func (w *guestCleanupWorker) run(ctx context.Context) {
	defer close(w.done)

	w.logger.Info("guest cleanup worker started",
		slog.Duration("interval", w.interval),
		slog.Duration("maxAge", w.maxAge),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("guest cleanup worker stopped")

			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *guestCleanupWorker) sweep(ctx context.Context) {
	deleted, err := w.account.CleanupGuests(ctx, w.maxAge)
	if err != nil {
		w.logger.Error("guest cleanup sweep failed", "error", err)

		return
	}

	if deleted > 0 {
		w.logger.Info("guest cleanup sweep finished", "deleted", deleted)
	}
}
