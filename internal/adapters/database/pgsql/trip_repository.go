package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	"github.com/tripweaver/trip_budget_app/internal/models"
	"github.com/tripweaver/trip_budget_app/internal/utils/mapping"
)

type PgxTripRepository struct {
	BaseRepository
}

// newPgxTripRepository creates a new repository for trip data.
func newPgxTripRepository(pool *pgxpool.Pool) portsrepo.TripRepositoryFacade {
	return &PgxTripRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TripRepositoryFacade = (*PgxTripRepository)(nil)

const tripColumns = `trip_id, name, description, currency_code, start_date, end_date, total_budget, daily_budget, created_at, created_by, last_updated_at, last_updated_by`

func scanTrip(row pgx.Row) (models.Trip, error) {
	var m models.Trip
	err := row.Scan(
		&m.TripID,
		&m.Name,
		&m.Description,
		&m.CurrencyCode,
		&m.StartDate,
		&m.EndDate,
		&m.TotalBudget,
		&m.DailyBudget,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTrip persists a new trip.
func (r *PgxTripRepository) SaveTrip(ctx context.Context, trip domain.Trip) error {
	m := mapping.ToModelTrip(trip)
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TripID,
		m.Name,
		m.Description,
		m.CurrencyCode,
		m.StartDate,
		m.EndDate,
		m.TotalBudget,
		m.DailyBudget,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save trip %s: %w", m.TripID, err)
	}
	return nil
}

// FindTripByID retrieves a trip by its ID.
func (r *PgxTripRepository) FindTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE trip_id = $1;
	`
	m, err := scanTrip(r.Pool.QueryRow(ctx, query, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trip %s: %w", tripID, err)
	}

	trip := mapping.ToDomainTrip(m)
	return &trip, nil
}

// ListTrips retrieves trips ordered by most recent start date.
func (r *PgxTripRepository) ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY start_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	modelTrips, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Trip, error) {
		return scanTrip(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan trips: %w", err)
	}

	trips := make([]domain.Trip, len(modelTrips))
	for i, m := range modelTrips {
		trips[i] = mapping.ToDomainTrip(m)
	}
	return trips, nil
}

// ListDistinctCurrencies returns the distinct settlement currencies across all trips.
func (r *PgxTripRepository) ListDistinctCurrencies(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT currency_code
		FROM trips
		ORDER BY currency_code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip currencies: %w", err)
	}
	defer rows.Close()

	codes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var code string
		err := row.Scan(&code)
		return code, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan trip currencies: %w", err)
	}
	return codes, nil
}

// UpdateTrip persists changes to an existing trip.
func (r *PgxTripRepository) UpdateTrip(ctx context.Context, trip domain.Trip) error {
	m := mapping.ToModelTrip(trip)
	query := `
		UPDATE trips SET
			name = $2,
			description = $3,
			start_date = $4,
			end_date = $5,
			total_budget = $6,
			daily_budget = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE trip_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TripID,
		m.Name,
		m.Description,
		m.StartDate,
		m.EndDate,
		m.TotalBudget,
		m.DailyBudget,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip %s: %w", m.TripID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTrip removes a trip; categories and expenses go with it via FK cascade.
func (r *PgxTripRepository) DeleteTrip(ctx context.Context, tripID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM trips WHERE trip_id = $1;`, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip %s: %w", tripID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
