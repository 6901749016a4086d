package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		TripRepo:         newPgxTripRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
	}
}
