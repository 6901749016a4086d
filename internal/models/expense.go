package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the database representation of a logged spend. The conversion
// snapshot (exchange_rate, amount_in_trip_currency) is written once and only
// recomputed on explicit edit of amount/currency/date.
type Expense struct {
	ExpenseID            string          `json:"expenseID"`  // Primary Key (UUID)
	TripID               string          `json:"tripID"`     // FK -> Trip.tripID
	CategoryID           string          `json:"categoryID"` // FK -> Category.categoryID
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Amount               decimal.Decimal `json:"amount"`
	CurrencyCode         string          `json:"currencyCode"`
	ExchangeRate         decimal.Decimal `json:"exchangeRate"`
	AmountInTripCurrency decimal.Decimal `json:"amountInTripCurrency"`
	StartDate            time.Time       `json:"startDate"`
	EndDate              *time.Time      `json:"endDate"` // NULL for single-day expense
	PaymentMethod        string          `json:"paymentMethod"`
	Location             string          `json:"location"`
	Notes                string          `json:"notes"`
	AuditFields
}
