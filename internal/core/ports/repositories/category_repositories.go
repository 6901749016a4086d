package repositories

import (
	"context"

	"github.com/tripweaver/trip_budget_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its ID, scoped to a trip.
	FindCategoryByID(ctx context.Context, categoryID, tripID string) (*domain.Category, error)

	// ListCategoriesByTrip retrieves all categories of a trip in display order.
	ListCategoriesByTrip(ctx context.Context, tripID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// SaveCategories persists a batch of categories in one round trip.
	SaveCategories(ctx context.Context, categories []domain.Category) error

	// UpdateCategory persists changes to an existing category.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category. Fails if expenses still reference it.
	DeleteCategory(ctx context.Context, categoryID, tripID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
