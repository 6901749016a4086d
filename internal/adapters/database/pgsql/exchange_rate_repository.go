package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	"github.com/tripweaver/trip_budget_app/internal/models"
	"github.com/tripweaver/trip_budget_app/internal/utils/mapping"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, from_currency, to_currency, rate, rate_date, fetched_at`

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.FromCurrencyCode,
		&m.ToCurrencyCode,
		&m.Rate,
		&m.RateDate,
		&m.FetchedAt,
	)
	return m, err
}

// SaveRate upserts the rate row for a (from, to, date) triple. The unique
// constraint on the triple makes the upsert atomic under concurrent refreshes.
func (r *PgxExchangeRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (exchange_rate_id, from_currency, to_currency, rate, rate_date, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (from_currency, to_currency, rate_date) DO UPDATE SET
			rate = EXCLUDED.rate,
			fetched_at = EXCLUDED.fetched_at;
	`

	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID,
		m.FromCurrencyCode,
		m.ToCurrencyCode,
		m.Rate,
		m.RateDate,
		m.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save exchange rate %s->%s: %w", m.FromCurrencyCode, m.ToCurrencyCode, err)
	}
	return nil
}

// FindRateForDate retrieves the rate stored for an exact (from, to, date) triple.
func (r *PgxExchangeRateRepository) FindRateForDate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND rate_date = $3;
	`
	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, fromCurrencyCode, toCurrencyCode, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s->%s for date: %w", fromCurrencyCode, toCurrencyCode, err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindLatestRate retrieves the most recent rate for a pair, any date.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2
		ORDER BY rate_date DESC
		LIMIT 1;
	`
	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, fromCurrencyCode, toCurrencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest exchange rate %s->%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindRatesInRange retrieves all rates for a pair with dates in [start, end].
func (r *PgxExchangeRateRepository) FindRatesInRange(ctx context.Context, fromCurrencyCode, toCurrencyCode string, start, end time.Time) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND rate_date BETWEEN $3 AND $4
		ORDER BY rate_date;
	`
	rows, err := r.Pool.Query(ctx, query, fromCurrencyCode, toCurrencyCode, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates %s->%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates %s->%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}

	rates := make([]domain.ExchangeRate, len(modelRates))
	for i, m := range modelRates {
		rates[i] = mapping.ToDomainExchangeRate(m)
	}
	return rates, nil
}
