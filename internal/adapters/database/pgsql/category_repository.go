package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	"github.com/tripweaver/trip_budget_app/internal/models"
	"github.com/tripweaver/trip_budget_app/internal/utils/mapping"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, trip_id, name, color, icon, budget_percentage, is_default, display_order, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.TripID,
		&m.Name,
		&m.Color,
		&m.Icon,
		&m.BudgetPercentage,
		&m.IsDefault,
		&m.DisplayOrder,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const insertCategoryQuery = `
	INSERT INTO categories (` + categoryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

func categoryInsertArgs(m models.Category) []any {
	return []any{
		m.CategoryID,
		m.TripID,
		m.Name,
		m.Color,
		m.Icon,
		m.BudgetPercentage,
		m.IsDefault,
		m.DisplayOrder,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveCategory persists a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	_, err := r.Pool.Exec(ctx, insertCategoryQuery, categoryInsertArgs(m)...)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// SaveCategories persists a batch of categories in one round trip.
func (r *PgxCategoryRepository) SaveCategories(ctx context.Context, categories []domain.Category) error {
	if len(categories) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, category := range categories {
		batch.Queue(insertCategoryQuery, categoryInsertArgs(mapping.ToModelCategory(category))...)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range categories {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save category batch: %w", err)
		}
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID, scoped to a trip.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID, tripID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1 AND trip_id = $2;
	`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// ListCategoriesByTrip retrieves all categories of a trip in display order.
func (r *PgxCategoryRepository) ListCategoriesByTrip(ctx context.Context, tripID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE trip_id = $1
		ORDER BY display_order, name;
	`
	rows, err := r.Pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for trip %s: %w", tripID, err)
	}
	defer rows.Close()

	modelCategories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories for trip %s: %w", tripID, err)
	}

	categories := make([]domain.Category, len(modelCategories))
	for i, m := range modelCategories {
		categories[i] = mapping.ToDomainCategory(m)
	}
	return categories, nil
}

// UpdateCategory persists changes to an existing category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories SET
			name = $3,
			color = $4,
			icon = $5,
			budget_percentage = $6,
			display_order = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE category_id = $1 AND trip_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.TripID,
		m.Name,
		m.Color,
		m.Icon,
		m.BudgetPercentage,
		m.DisplayOrder,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category. The FK from expenses is RESTRICT, so a
// category still referenced by expenses fails with a constraint violation.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID, tripID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1 AND trip_id = $2;`, categoryID, tripID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: category has expenses and cannot be deleted", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
