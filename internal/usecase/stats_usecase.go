package usecase

import "context"

// StatsUsecase defines the interface for the public platform counters.
type StatsUsecase interface {
	// GetBaseInfo returns the public slice of the platform counter singleton,
	// creating the zeroed row on first use.
	GetBaseInfo(ctx context.Context) (*BaseInfoOutput, error)
}

// BaseInfoOutput is the public counter payload. The monitoring counters are
// deliberately absent.
type BaseInfoOutput struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}
