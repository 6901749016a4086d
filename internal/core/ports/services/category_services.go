package services

import (
	"context"

	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	"github.com/tripweaver/trip_budget_app/internal/dto"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a specific category within a trip.
	GetCategoryByID(ctx context.Context, tripID, categoryID string) (*domain.Category, error)

	// ListCategoriesByTrip retrieves all categories of a trip in display order.
	ListCategoriesByTrip(ctx context.Context, tripID string) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data
type CategoryWriterSvc interface {
	// CreateCategory persists a new category within a trip.
	CreateCategory(ctx context.Context, tripID string, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)

	// UpdateCategory updates category details.
	UpdateCategory(ctx context.Context, tripID, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error)

	// DeleteCategory removes a category. Categories with expenses cannot be removed.
	DeleteCategory(ctx context.Context, tripID, categoryID string) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
