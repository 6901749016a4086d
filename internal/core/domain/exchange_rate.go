package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies for a
// specific calendar date. At most one row exists per (from, to, date) triple;
// rows are written only by the refresh job and never deleted.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	RateDate         time.Time       `json:"rateDate"` // calendar date the rate is valid for
	FetchedAt        time.Time       `json:"fetchedAt"`
}

// RateHistoryPoint is one entry of a historical rate series.
type RateHistoryPoint struct {
	Date time.Time       `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}
