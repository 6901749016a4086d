package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is the top-level budgeting unit. All statistics for a trip are
// expressed in its settlement currency (CurrencyCode).
//
// TotalBudget and DailyBudget are derived from each other using the trip
// length in days; a zero value means the budget is not configured.
type Trip struct {
	TripID       string          `json:"tripID"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CurrencyCode string          `json:"currencyCode"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	TotalBudget  decimal.Decimal `json:"totalBudget"`
	DailyBudget  decimal.Decimal `json:"dailyBudget"`
	AuditFields
}

// LengthDays returns the inclusive trip length in days.
func (t Trip) LengthDays() int {
	return daysBetween(t.StartDate, t.EndDate) + 1
}

// daysBetween returns the whole days from a to b (negative if b is before a).
// Both values are expected to be midnight-normalized dates.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
