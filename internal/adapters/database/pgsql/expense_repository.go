package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	"github.com/tripweaver/trip_budget_app/internal/models"
	"github.com/tripweaver/trip_budget_app/internal/utils/mapping"
	"github.com/tripweaver/trip_budget_app/internal/utils/pagination"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, trip_id, category_id, title, description, amount, currency_code, exchange_rate, amount_in_trip_currency, start_date, end_date, payment_method, location, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.TripID,
		&m.CategoryID,
		&m.Title,
		&m.Description,
		&m.Amount,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.AmountInTripCurrency,
		&m.StartDate,
		&m.EndDate,
		&m.PaymentMethod,
		&m.Location,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	modelExpenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, err
	}
	expenses := make([]domain.Expense, len(modelExpenses))
	for i, m := range modelExpenses {
		expenses[i] = mapping.ToDomainExpense(m)
	}
	return expenses, nil
}

// SaveExpense persists a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.TripID,
		m.CategoryID,
		m.Title,
		m.Description,
		m.Amount,
		m.CurrencyCode,
		m.ExchangeRate,
		m.AmountInTripCurrency,
		m.StartDate,
		m.EndDate,
		m.PaymentMethod,
		m.Location,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID, scoped to a trip.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID, tripID string) (*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE expense_id = $1 AND trip_id = $2;
	`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}

	expense := mapping.ToDomainExpense(m)
	return &expense, nil
}

// ListExpensesByTrip retrieves a filtered page of a trip's expenses using
// token-based pagination, most recent start date first.
func (r *PgxExpenseRepository) ListExpensesByTrip(ctx context.Context, tripID string, filter portsrepo.ExpenseListFilter) ([]domain.Expense, string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	var sb strings.Builder
	sb.WriteString(`SELECT ` + expenseColumns + ` FROM expenses WHERE trip_id = $1`)
	args := []any{tripID}

	addArg := func(clause string, value any) {
		args = append(args, value)
		sb.WriteString(" AND " + clause + "$" + strconv.Itoa(len(args)))
	}

	if filter.CategoryID != nil {
		addArg("category_id = ", *filter.CategoryID)
	}
	if filter.FromDate != nil {
		addArg("start_date >= ", *filter.FromDate)
	}
	if filter.ToDate != nil {
		addArg("start_date <= ", *filter.ToDate)
	}
	if filter.PaymentMethod != nil {
		addArg("payment_method = ", *filter.PaymentMethod)
	}

	if filter.NextToken != "" {
		lastStartDate, lastCreatedAt, decodeErr := pagination.DecodeToken(filter.NextToken)
		if decodeErr != nil {
			return nil, "", apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastStartDate, lastCreatedAt)
		sb.WriteString(" AND (start_date, created_at) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")")
	}

	args = append(args, fetchLimit)
	sb.WriteString(" ORDER BY start_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query expenses for trip %s: %w", tripID, err)
	}
	defer rows.Close()

	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan expenses for trip %s: %w", tripID, err)
	}

	nextToken := ""
	if len(expenses) == fetchLimit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		nextToken = pagination.EncodeToken(last.StartDate, last.CreatedAt)
	}

	return expenses, nextToken, nil
}

// FindAllExpensesByTrip retrieves every expense of a trip.
func (r *PgxExpenseRepository) FindAllExpensesByTrip(ctx context.Context, tripID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = $1
		ORDER BY start_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for trip %s: %w", tripID, err)
	}
	defer rows.Close()

	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan expenses for trip %s: %w", tripID, err)
	}
	return expenses, nil
}

// FindExpensesTouchingDate retrieves expenses covering the given date:
// single-day expenses starting on it, multi-day expenses whose inclusive
// range contains it.
func (r *PgxExpenseRepository) FindExpensesTouchingDate(ctx context.Context, tripID string, date time.Time) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = $1
		  AND ((end_date IS NULL AND start_date = $2)
		    OR (end_date IS NOT NULL AND start_date <= $2 AND end_date >= $2))
		ORDER BY start_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tripID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses touching date for trip %s: %w", tripID, err)
	}
	defer rows.Close()

	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan expenses touching date for trip %s: %w", tripID, err)
	}
	return expenses, nil
}

// FindExpensesOverlappingRange retrieves expenses whose date span intersects
// [start, end] inclusive. Single-day expenses span just their start date.
func (r *PgxExpenseRepository) FindExpensesOverlappingRange(ctx context.Context, tripID string, start, end time.Time) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = $1
		  AND start_date <= $3
		  AND COALESCE(end_date, start_date) >= $2
		ORDER BY start_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tripID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses in range for trip %s: %w", tripID, err)
	}
	defer rows.Close()

	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan expenses in range for trip %s: %w", tripID, err)
	}
	return expenses, nil
}

// UpdateExpense persists changes to an existing expense.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses SET
			category_id = $3,
			title = $4,
			description = $5,
			amount = $6,
			currency_code = $7,
			exchange_rate = $8,
			amount_in_trip_currency = $9,
			start_date = $10,
			end_date = $11,
			payment_method = $12,
			location = $13,
			notes = $14,
			last_updated_at = $15,
			last_updated_by = $16
		WHERE expense_id = $1 AND trip_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.TripID,
		m.CategoryID,
		m.Title,
		m.Description,
		m.Amount,
		m.CurrencyCode,
		m.ExchangeRate,
		m.AmountInTripCurrency,
		m.StartDate,
		m.EndDate,
		m.PaymentMethod,
		m.Location,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpense removes an expense.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID, tripID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1 AND trip_id = $2;`, expenseID, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
