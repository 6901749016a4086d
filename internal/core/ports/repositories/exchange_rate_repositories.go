package repositories

import (
	"context"
	"time"

	"github.com/tripweaver/trip_budget_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
// All lookups are plain queries; rate resolution fallback logic lives in the
// service layer, not here.
type ExchangeRateReader interface {
	// FindRateForDate retrieves the rate stored for an exact (from, to, date) triple.
	FindRateForDate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error)

	// FindLatestRate retrieves the most recent rate for a pair, any date,
	// ordered by rate date descending.
	FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// FindRatesInRange retrieves all rates for a pair with dates in [start, end] inclusive.
	FindRatesInRange(ctx context.Context, fromCurrencyCode, toCurrencyCode string, start, end time.Time) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveRate upserts a rate row keyed by (from, to, date): the existing
	// row's rate and fetch timestamp are refreshed if present, else a new
	// row is inserted. The upsert must be atomic under the uniqueness
	// constraint on the triple.
	SaveRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	TransactionManager
}
