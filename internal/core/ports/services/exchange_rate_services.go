package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data.
// Rate resolution walks a fixed fallback chain over stored rates only and
// never calls the external provider inline.
type ExchangeRateReaderSvc interface {
	// ResolveRate resolves the multiplier converting fromCode to toCode on
	// the given date. A nil date means today. Identical codes resolve to 1
	// without touching storage. Returns apperrors.ErrNotFound (wrapped)
	// when no stored rate in either direction can serve the pair.
	ResolveRate(ctx context.Context, fromCode, toCode string, date *time.Time) (decimal.Decimal, error)

	// ConvertAmount converts an amount between currencies using ResolveRate.
	// Returns the converted amount and the rate that produced it.
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, date *time.Time) (decimal.Decimal, decimal.Decimal, error)

	// GetHistoricalRates builds a per-source-currency daily rate series
	// against toCode covering the trailing window of the given number of
	// days ending today. Days without a stored rate are filled from the
	// nearest date that has one; pairs with no data at all map to an
	// empty series.
	GetHistoricalRates(ctx context.Context, fromCodes []string, toCode string, days int) (map[string][]domain.RateHistoryPoint, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// SaveRate upserts the rate for (fromCode, toCode) on the given date.
	SaveRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, date time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
