package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
)

// exchangeRateService resolves conversion rates from the local rate store.
// Resolution never calls the external provider; missing pairs fall through a
// fixed chain of stored-rate fallbacks and surface ErrNotFound at the end.
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	// now is injected in tests to pin "today".
	now func() time.Time
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo: rateRepo,
		now:      time.Now,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// truncateToDay normalizes a timestamp to its UTC calendar date at midnight.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	return code, nil
}

// invertRate returns 1/rate, rejecting non-positive stored rates.
func invertRate(rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: stored rate is not positive", apperrors.ErrValidation)
	}
	return decimal.NewFromInt(1).Div(rate), nil
}

// ResolveRate walks the fallback chain over stored rates:
// exact (from, to, date), reverse inverted, then both again under today's
// date when the requested date is not today, then the most recent rate for
// the pair in either direction. Same-currency pairs short-circuit to 1.
func (s *exchangeRateService) ResolveRate(ctx context.Context, fromCode, toCode string, date *time.Time) (decimal.Decimal, error) {
	fromCode, err := normalizeCurrencyCode(fromCode)
	if err != nil {
		return decimal.Zero, err
	}
	toCode, err = normalizeCurrencyCode(toCode)
	if err != nil {
		return decimal.Zero, err
	}

	if fromCode == toCode {
		return decimal.NewFromInt(1), nil
	}

	today := truncateToDay(s.now())
	target := today
	if date != nil {
		target = truncateToDay(*date)
	}

	if rate, ok, err := s.lookupBothDirections(ctx, fromCode, toCode, target); err != nil {
		return decimal.Zero, err
	} else if ok {
		return rate, nil
	}

	if !target.Equal(today) {
		if rate, ok, err := s.lookupBothDirections(ctx, fromCode, toCode, today); err != nil {
			return decimal.Zero, err
		} else if ok {
			return rate, nil
		}
	}

	if rate, ok, err := s.lookupLatestBothDirections(ctx, fromCode, toCode); err != nil {
		return decimal.Zero, err
	} else if ok {
		return rate, nil
	}

	return decimal.Zero, fmt.Errorf("%w: no exchange rate available for %s to %s", apperrors.ErrNotFound, fromCode, toCode)
}

// lookupBothDirections tries the exact (from, to, date) row, then the reverse
// row inverted. The boolean reports whether a rate was found.
func (s *exchangeRateService) lookupBothDirections(ctx context.Context, fromCode, toCode string, date time.Time) (decimal.Decimal, bool, error) {
	stored, err := s.rateRepo.FindRateForDate(ctx, fromCode, toCode, date)
	if err == nil {
		return stored.Rate, true, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, false, fmt.Errorf("failed to look up exchange rate: %w", err)
	}

	reversed, err := s.rateRepo.FindRateForDate(ctx, toCode, fromCode, date)
	if err == nil {
		inverted, invErr := invertRate(reversed.Rate)
		if invErr != nil {
			return decimal.Zero, false, invErr
		}
		return inverted, true, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, false, fmt.Errorf("failed to look up reverse exchange rate: %w", err)
	}

	return decimal.Zero, false, nil
}

// lookupLatestBothDirections tries the most recent stored rate for the pair,
// then the most recent reverse rate inverted.
func (s *exchangeRateService) lookupLatestBothDirections(ctx context.Context, fromCode, toCode string) (decimal.Decimal, bool, error) {
	stored, err := s.rateRepo.FindLatestRate(ctx, fromCode, toCode)
	if err == nil {
		return stored.Rate, true, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, false, fmt.Errorf("failed to look up latest exchange rate: %w", err)
	}

	reversed, err := s.rateRepo.FindLatestRate(ctx, toCode, fromCode)
	if err == nil {
		inverted, invErr := invertRate(reversed.Rate)
		if invErr != nil {
			return decimal.Zero, false, invErr
		}
		return inverted, true, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, false, fmt.Errorf("failed to look up latest reverse exchange rate: %w", err)
	}

	return decimal.Zero, false, nil
}

// ConvertAmount converts an amount between currencies at the resolved rate.
func (s *exchangeRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, date *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	rate, err := s.ResolveRate(ctx, fromCode, toCode, date)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return amount.Mul(rate), rate, nil
}

// SaveRate upserts the rate for a pair on a calendar date.
func (s *exchangeRateService) SaveRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, date time.Time) (*domain.ExchangeRate, error) {
	fromCode, err := normalizeCurrencyCode(fromCode)
	if err != nil {
		return nil, err
	}
	toCode, err = normalizeCurrencyCode(toCode)
	if err != nil {
		return nil, err
	}
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	stored := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             rate,
		RateDate:         truncateToDay(date),
		FetchedAt:        s.now().UTC(),
	}

	if err := s.rateRepo.SaveRate(ctx, stored); err != nil {
		s.LogError(ctx, err, "failed to save exchange rate",
			"from_currency", fromCode, "to_currency", toCode)
		return nil, fmt.Errorf("failed to save exchange rate in service: %w", err)
	}

	return &stored, nil
}

// GetHistoricalRates builds a daily series per source currency against toCode
// for the trailing window ending today. Each day resolves from exact rates
// first, then inverted reverse rates; remaining gaps are filled from the
// nearest date that has a value, with the earlier date winning ties. Pairs
// with no stored data in the window produce an empty series.
func (s *exchangeRateService) GetHistoricalRates(ctx context.Context, fromCodes []string, toCode string, days int) (map[string][]domain.RateHistoryPoint, error) {
	toCode, err := normalizeCurrencyCode(toCode)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1", apperrors.ErrValidation)
	}

	end := truncateToDay(s.now())
	start := end.AddDate(0, 0, -(days - 1))

	series := make(map[string][]domain.RateHistoryPoint, len(fromCodes))
	for _, rawCode := range fromCodes {
		fromCode, err := normalizeCurrencyCode(rawCode)
		if err != nil {
			return nil, err
		}

		if fromCode == toCode {
			series[fromCode] = constantSeries(start, days, decimal.NewFromInt(1))
			continue
		}

		points, err := s.buildPairSeries(ctx, fromCode, toCode, start, days)
		if err != nil {
			return nil, err
		}
		series[fromCode] = points
	}

	return series, nil
}

func constantSeries(start time.Time, days int, rate decimal.Decimal) []domain.RateHistoryPoint {
	points := make([]domain.RateHistoryPoint, days)
	for i := range points {
		points[i] = domain.RateHistoryPoint{Date: start.AddDate(0, 0, i), Rate: rate}
	}
	return points
}

func (s *exchangeRateService) buildPairSeries(ctx context.Context, fromCode, toCode string, start time.Time, days int) ([]domain.RateHistoryPoint, error) {
	end := start.AddDate(0, 0, days-1)

	exact, err := s.rateRepo.FindRatesInRange(ctx, fromCode, toCode, start, end)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load historical rates: %w", err)
	}
	reverse, err := s.rateRepo.FindRatesInRange(ctx, toCode, fromCode, start, end)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load reverse historical rates: %w", err)
	}

	// Exact-direction rates win over inverted reverse rates on the same day.
	byDay := make(map[time.Time]decimal.Decimal, days)
	for _, row := range reverse {
		inverted, invErr := invertRate(row.Rate)
		if invErr != nil {
			return nil, invErr
		}
		byDay[truncateToDay(row.RateDate)] = inverted
	}
	for _, row := range exact {
		byDay[truncateToDay(row.RateDate)] = row.Rate
	}

	if len(byDay) == 0 {
		return []domain.RateHistoryPoint{}, nil
	}

	points := make([]domain.RateHistoryPoint, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		rate, ok := byDay[day]
		if !ok {
			rate = nearestRate(byDay, day)
		}
		points[i] = domain.RateHistoryPoint{Date: day, Rate: rate}
	}
	return points, nil
}

// nearestRate picks the value whose date is closest to the target day, with
// the earlier date winning when two dates are equally close. The map is
// known to be non-empty.
func nearestRate(byDay map[time.Time]decimal.Decimal, target time.Time) decimal.Decimal {
	var (
		best     time.Time
		bestDist time.Duration
		found    bool
	)
	for day := range byDay {
		dist := day.Sub(target)
		if dist < 0 {
			dist = -dist
		}
		if !found || dist < bestDist || (dist == bestDist && day.Before(best)) {
			best, bestDist, found = day, dist, true
		}
	}
	return byDay[best]
}
