package entity

import "time"

// PlatformStats is the platform-wide counter singleton. Exactly one row exists;
// it is created lazily with zeroed counters and fully recomputed from current
// store contents after every offer, review or order-completion mutation.
type PlatformStats struct {
	OfferCount           int64
	ReviewCount          int64
	BusinessProfileCount int64
	AverageRating        float64 // Mean review rating rounded to one decimal, 0.0 without reviews.

	// Monitoring counters, not exposed through the public base-info payload.
	TotalOffers          int64
	TotalCompletedOrders int64

	UpdatedAt time.Time
}
