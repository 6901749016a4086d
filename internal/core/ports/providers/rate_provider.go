package providers

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider is the outbound port for the external exchange rate API.
// Implementations live under internal/adapters.
type RateProvider interface {
	// FetchAllRates retrieves the full quote table for one base currency:
	// a map of quote currency code to the rate converting base to quote.
	FetchAllRates(ctx context.Context, baseCode string) (map[string]decimal.Decimal, error)

	// FetchPairRate retrieves the rate for a single currency pair.
	FetchPairRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)
}
