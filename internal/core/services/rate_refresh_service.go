package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripweaver/trip_budget_app/internal/core/ports/providers"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
)

// rateRefreshService pulls the provider's full quote table once per distinct
// trip settlement currency and upserts every quoted pair under today's date.
// A failed base leaves its stored rates stale and does not fail the run.
type rateRefreshService struct {
	BaseService
	tripRepo   portsrepo.TripReader
	rateSvc    portssvc.ExchangeRateWriterSvc
	provider   providers.RateProvider
	fetchDelay time.Duration
	now        func() time.Time
}

// NewRateRefreshService creates a new rate refresh service. fetchDelay is the
// pause between successive provider calls to stay under its request quota.
func NewRateRefreshService(tripRepo portsrepo.TripReader, rateSvc portssvc.ExchangeRateWriterSvc, provider providers.RateProvider, fetchDelay time.Duration) portssvc.RateRefreshSvc {
	return &rateRefreshService{
		tripRepo:   tripRepo,
		rateSvc:    rateSvc,
		provider:   provider,
		fetchDelay: fetchDelay,
		now:        time.Now,
	}
}

var _ portssvc.RateRefreshSvc = (*rateRefreshService)(nil)

func (s *rateRefreshService) RefreshAllRates(ctx context.Context) (portssvc.RateRefreshSummary, error) {
	summary := portssvc.RateRefreshSummary{}

	bases, err := s.tripRepo.ListDistinctCurrencies(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list trip currencies for rate refresh: %w", err)
	}
	if len(bases) == 0 {
		s.LogInfo(ctx, "no trips exist, skipping rate refresh")
		return summary, nil
	}

	today := truncateToDay(s.now())

	for i, base := range bases {
		if i > 0 && s.fetchDelay > 0 {
			if err := sleepCtx(ctx, s.fetchDelay); err != nil {
				return summary, err
			}
		}

		summary.BasesAttempted++

		quotes, err := s.provider.FetchAllRates(ctx, base)
		if err != nil {
			summary.Failures++
			s.LogWarn(ctx, "rate refresh failed for base currency, keeping stale rates",
				"base_currency", base, "error", err.Error())
			continue
		}

		saved := s.saveQuotes(ctx, base, quotes, today)
		summary.RatesSaved += saved
		s.LogInfo(ctx, "refreshed rates for base currency",
			"base_currency", base, "rates_saved", saved)
	}

	return summary, nil
}

func (s *rateRefreshService) saveQuotes(ctx context.Context, base string, quotes map[string]decimal.Decimal, date time.Time) int {
	saved := 0
	for quote, rate := range quotes {
		if quote == base {
			continue
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			s.LogWarn(ctx, "provider returned non-positive rate, skipping",
				"base_currency", base, "quote_currency", quote)
			continue
		}
		if _, err := s.rateSvc.SaveRate(ctx, base, quote, rate, date); err != nil {
			s.LogError(ctx, err, "failed to store refreshed rate",
				"base_currency", base, "quote_currency", quote)
			continue
		}
		saved++
	}
	return saved
}

// sleepCtx waits for the duration unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
