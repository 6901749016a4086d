package services

import (
	"context"

	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	"github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	"github.com/tripweaver/trip_budget_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves a specific expense within a trip.
	GetExpenseByID(ctx context.Context, tripID, expenseID string) (*domain.Expense, error)

	// ListExpensesByTrip retrieves a filtered page of a trip's expenses.
	ListExpensesByTrip(ctx context.Context, tripID string, filter repositories.ExpenseListFilter) (*dto.ListExpensesResponse, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense persists a new expense, snapshotting the conversion to
	// the trip currency at the expense start date. Fails when no rate can
	// be resolved for a foreign-currency amount.
	CreateExpense(ctx context.Context, tripID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)

	// UpdateExpense updates expense details, re-snapshotting the conversion
	// when amount, currency or start date change.
	UpdateExpense(ctx context.Context, tripID, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, tripID, expenseID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
