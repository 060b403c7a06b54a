package model

import "time"

// StatsSingletonID pins the platform_stats table to a single row.
const StatsSingletonID = 1

// PlatformStatsModel mirrors the 'platform_stats' table. Exactly one row ever
// exists; every counter is rewritten on each recomputation.
type PlatformStatsModel struct {
	ID                   int     `gorm:"primaryKey"`
	OfferCount           int64   `gorm:"not null;default:0"`
	ReviewCount          int64   `gorm:"not null;default:0"`
	BusinessProfileCount int64   `gorm:"not null;default:0"`
	AverageRating        float64 `gorm:"type:numeric(3,1);not null;default:0"`
	TotalOffers          int64   `gorm:"not null;default:0"`
	TotalCompletedOrders int64   `gorm:"not null;default:0"`
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (PlatformStatsModel) TableName() string {
	return "platform_stats"
}

// NewPlatformStatsModel returns a zeroed singleton row.
func NewPlatformStatsModel() *PlatformStatsModel {
	return &PlatformStatsModel{ID: StatsSingletonID}
}
