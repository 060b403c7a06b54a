package repository

import (
	"context"

	"coderr/internal/domain/entity"
)

// StatsRepository manages the platform counter singleton. Mutating use cases
// call Recompute through the same transaction as their own write.
type StatsRepository interface {
	// GetOrCreate returns the singleton row, creating it with zeroed counters
	// when it does not exist yet.
	GetOrCreate(ctx context.Context) (*entity.PlatformStats, error)

	// Recompute fully re-derives every counter from current store contents and
	// persists the result. It is a pure function of store state, so concurrent
	// recomputations converge on the same value.
	Recompute(ctx context.Context) (*entity.PlatformStats, error)
}
