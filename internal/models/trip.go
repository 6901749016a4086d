package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is the database representation of a trip.
type Trip struct {
	TripID       string          `json:"tripID"` // Primary Key (UUID)
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"` // settlement currency
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	TotalBudget  decimal.Decimal `json:"totalBudget"`
	DailyBudget  decimal.Decimal `json:"dailyBudget"`
	AuditFields
}
