package repositories

import (
	"context"
	"time"

	"github.com/tripweaver/trip_budget_app/internal/core/domain"
)

// ExpenseListFilter narrows ListExpensesByTrip results. Nil fields are ignored.
type ExpenseListFilter struct {
	CategoryID    *string
	FromDate      *time.Time
	ToDate        *time.Time
	PaymentMethod *string
	Limit         int
	NextToken     string // opaque cursor from a previous page
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by its ID, scoped to a trip.
	FindExpenseByID(ctx context.Context, expenseID, tripID string) (*domain.Expense, error)

	// ListExpensesByTrip retrieves a filtered page of a trip's expenses,
	// most recent start date first. Returns the page and a cursor token for
	// the next page (empty when exhausted).
	ListExpensesByTrip(ctx context.Context, tripID string, filter ExpenseListFilter) ([]domain.Expense, string, error)

	// FindAllExpensesByTrip retrieves every expense of a trip.
	FindAllExpensesByTrip(ctx context.Context, tripID string) ([]domain.Expense, error)

	// FindExpensesTouchingDate retrieves expenses that cover the given date:
	// single-day expenses starting on it, multi-day expenses whose inclusive
	// range contains it.
	FindExpensesTouchingDate(ctx context.Context, tripID string, date time.Time) ([]domain.Expense, error)

	// FindExpensesOverlappingRange retrieves expenses whose date span
	// intersects [start, end] inclusive.
	FindExpensesOverlappingRange(ctx context.Context, tripID string, start, end time.Time) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense persists changes to an existing expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, expenseID, tripID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
