package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single logged spend. Amount is in the original currency;
// AmountInTripCurrency is the snapshot-converted value (Amount x ExchangeRate,
// captured when the expense is written and recomputed only on explicit edit
// of amount/currency/date).
//
// A nil EndDate means a single-day expense; a non-nil EndDate >= StartDate
// spans the inclusive date range.
type Expense struct {
	ExpenseID            string          `json:"expenseID"`
	TripID               string          `json:"tripID"`
	CategoryID           string          `json:"categoryID"`
	Title                string          `json:"title"`
	Description          string          `json:"description,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	CurrencyCode         string          `json:"currencyCode"`
	ExchangeRate         decimal.Decimal `json:"exchangeRate"`
	AmountInTripCurrency decimal.Decimal `json:"amountInTripCurrency"`
	StartDate            time.Time       `json:"startDate"`
	EndDate              *time.Time      `json:"endDate,omitempty"`
	PaymentMethod        string          `json:"paymentMethod,omitempty"` // cash, card, transfer
	Location             string          `json:"location,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	AuditFields
}

// SpanDays returns the inclusive number of days the expense covers.
func (e Expense) SpanDays() int {
	if e.EndDate == nil {
		return 1
	}
	return daysBetween(e.StartDate, *e.EndDate) + 1
}

// DailyShare returns the converted amount apportioned evenly to one day of
// the expense's span.
func (e Expense) DailyShare() decimal.Decimal {
	span := e.SpanDays()
	if span <= 1 {
		return e.AmountInTripCurrency
	}
	return e.AmountInTripCurrency.Div(decimal.NewFromInt(int64(span)))
}

// CoversDate reports whether the expense touches the given date: single-day
// expenses only on their start date, multi-day expenses on every day of the
// inclusive range.
func (e Expense) CoversDate(date time.Time) bool {
	if e.EndDate == nil {
		return e.StartDate.Equal(date)
	}
	return !date.Before(e.StartDate) && !date.After(*e.EndDate)
}
