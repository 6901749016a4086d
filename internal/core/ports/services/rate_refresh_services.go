package services

import (
	"context"
)

// RateRefreshSummary reports what a refresh run did. Failures counts base
// currencies whose provider fetch failed; their stored rates are simply left
// stale, the run itself still succeeds.
type RateRefreshSummary struct {
	BasesAttempted int
	RatesSaved     int
	Failures       int
}

// RateRefreshSvc pulls fresh rates from the external provider for every
// settlement currency in use and upserts them into the rate store.
type RateRefreshSvc interface {
	// RefreshAllRates fetches the full rate table once per distinct trip
	// settlement currency and saves each quoted pair under today's date.
	RefreshAllRates(ctx context.Context) (RateRefreshSummary, error)
}
