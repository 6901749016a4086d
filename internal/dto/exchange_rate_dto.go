package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
)

// RateResponse is the resolved exchange rate for a currency pair and date.
type RateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Date             time.Time       `json:"date"`
}

// RateHistoryPointResponse is one entry of a historical rate series.
type RateHistoryPointResponse struct {
	Date string          `json:"date"` // YYYY-MM-DD
	Rate decimal.Decimal `json:"rate"`
}

// HistoricalRatesResponse maps each requested source currency to its series.
type HistoricalRatesResponse struct {
	ToCurrencyCode string                                `json:"toCurrencyCode"`
	Days           int                                   `json:"days"`
	Rates          map[string][]RateHistoryPointResponse `json:"rates"`
}

// ToHistoricalRatesResponse converts resolved series into the response shape.
func ToHistoricalRatesResponse(toCode string, days int, series map[string][]domain.RateHistoryPoint) HistoricalRatesResponse {
	out := HistoricalRatesResponse{
		ToCurrencyCode: toCode,
		Days:           days,
		Rates:          make(map[string][]RateHistoryPointResponse, len(series)),
	}
	for code, points := range series {
		converted := make([]RateHistoryPointResponse, len(points))
		for i, p := range points {
			converted[i] = RateHistoryPointResponse{
				Date: p.Date.Format("2006-01-02"),
				Rate: p.Rate,
			}
		}
		out.Rates[code] = converted
	}
	return out
}
