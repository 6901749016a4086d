package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
)

// CreateExpenseRequest defines the structure for logging a new expense.
// EndDate, when set, must be on or after StartDate and marks a multi-day
// expense whose amount is split evenly across the inclusive span.
type CreateExpenseRequest struct {
	CategoryID    string          `json:"categoryID" binding:"required,uuid"`
	Title         string          `json:"title" binding:"required,max=255"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,iso4217"`
	StartDate     time.Time       `json:"startDate" binding:"required"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	PaymentMethod string          `json:"paymentMethod" binding:"omitempty,oneof=cash card transfer"`
	Location      string          `json:"location"`
	Notes         string          `json:"notes"`
}

// UpdateExpenseRequest defines the structure for editing an expense. Nil
// fields are left unchanged. Changing amount, currency or start date
// re-snapshots the conversion at the new values.
type UpdateExpenseRequest struct {
	CategoryID    *string          `json:"categoryID,omitempty" binding:"omitempty,uuid"`
	Title         *string          `json:"title,omitempty" binding:"omitempty,max=255"`
	Description   *string          `json:"description,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	CurrencyCode  *string          `json:"currencyCode,omitempty" binding:"omitempty,iso4217"`
	StartDate     *time.Time       `json:"startDate,omitempty"`
	EndDate       *time.Time       `json:"endDate,omitempty"`
	ClearEndDate  bool             `json:"clearEndDate,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty" binding:"omitempty,oneof=cash card transfer"`
	Location      *string          `json:"location,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
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
	PaymentMethod        string          `json:"paymentMethod,omitempty"`
	Location             string          `json:"location,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	CreatedBy            string          `json:"createdBy"`
	LastUpdatedAt        time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy        string          `json:"lastUpdatedBy"`
}

// ListExpensesResponse is one page of a trip's expenses plus the cursor for
// the next page (empty when exhausted).
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken string            `json:"nextToken,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:            expense.ExpenseID,
		TripID:               expense.TripID,
		CategoryID:           expense.CategoryID,
		Title:                expense.Title,
		Description:          expense.Description,
		Amount:               expense.Amount,
		CurrencyCode:         expense.CurrencyCode,
		ExchangeRate:         expense.ExchangeRate,
		AmountInTripCurrency: expense.AmountInTripCurrency,
		StartDate:            expense.StartDate,
		EndDate:              expense.EndDate,
		PaymentMethod:        expense.PaymentMethod,
		Location:             expense.Location,
		Notes:                expense.Notes,
		CreatedAt:            expense.CreatedAt,
		CreatedBy:            expense.CreatedBy,
		LastUpdatedAt:        expense.LastUpdatedAt,
		LastUpdatedBy:        expense.LastUpdatedBy,
	}
}

// ToListExpensesResponse converts a page of domain.Expense to the list DTO.
func ToListExpensesResponse(expenses []domain.Expense, nextToken string) ListExpensesResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		res[i] = ToExpenseResponse(&expense)
	}
	return ListExpensesResponse{Expenses: res, NextToken: nextToken}
}
