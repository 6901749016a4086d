package services

import (
	"context"
	"time"

	"github.com/tripweaver/trip_budget_app/internal/core/domain"
)

// StatisticsSvc computes spending aggregates over a trip's expenses. All
// figures are in the trip's settlement currency, taken from each expense's
// stored conversion snapshot.
type StatisticsSvc interface {
	// GetDailyBudgetStatistics computes the budget picture for one target
	// date: today's spend with multi-day expenses apportioned evenly, the
	// per-category breakdown, and the cumulative position over past days.
	GetDailyBudgetStatistics(ctx context.Context, tripID string, targetDate time.Time) (*domain.DailyBudgetStatistics, error)

	// GetTripStatistics aggregates the whole trip against its total budget.
	GetTripStatistics(ctx context.Context, tripID string) (*domain.TripStatistics, error)
}
