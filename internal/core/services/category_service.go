package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
	"github.com/tripweaver/trip_budget_app/internal/dto"
)

// defaultCategories is the category set seeded into every new trip.
// Percentages sum to 100 across the funded buckets.
var defaultCategories = []struct {
	name             string
	color            string
	icon             string
	budgetPercentage decimal.Decimal
}{
	{"Accommodation", "#3B82F6", "home", decimal.NewFromInt(35)},
	{"Transportation", "#10B981", "car", decimal.NewFromInt(20)},
	{"Food & Dining", "#F59E0B", "utensils", decimal.NewFromInt(25)},
	{"Activities", "#8B5CF6", "ticket", decimal.NewFromInt(15)},
	{"Shopping", "#EC4899", "shopping-bag", decimal.NewFromInt(5)},
	{"Health & Medical", "#EF4444", "heart-pulse", decimal.Zero},
	{"Entertainment", "#06B6D4", "music", decimal.Zero},
	{"Other", "#6B7280", "more-horizontal", decimal.Zero},
}

// categoryService provides business logic for per-trip budget categories.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	tripRepo     portsrepo.TripReader
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, tripRepo portsrepo.TripReader) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		tripRepo:     tripRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func validateBudgetPercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: budget percentage must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, tripID string, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	if _, err := s.tripRepo.FindTripByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("failed to find trip for category: %w", err)
	}

	budgetPercentage := decimal.Zero
	if req.BudgetPercentage != nil {
		if err := validateBudgetPercentage(*req.BudgetPercentage); err != nil {
			return nil, err
		}
		budgetPercentage = *req.BudgetPercentage
	}

	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	} else {
		existing, err := s.categoryRepo.ListCategoriesByTrip(ctx, tripID)
		if err != nil {
			return nil, fmt.Errorf("failed to list categories for display order: %w", err)
		}
		displayOrder = len(existing)
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:       uuid.NewString(),
		TripID:           tripID,
		Name:             req.Name,
		Color:            req.Color,
		Icon:             req.Icon,
		BudgetPercentage: budgetPercentage,
		IsDefault:        false,
		DisplayOrder:     displayOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "failed to save category", "trip_id", tripID, "category_name", req.Name)
		return nil, fmt.Errorf("failed to create category in service: %w", err)
	}

	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, tripID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category in service: %w", err)
	}
	return category, nil
}

func (s *categoryService) ListCategoriesByTrip(ctx context.Context, tripID string) ([]domain.Category, error) {
	if _, err := s.tripRepo.FindTripByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("failed to find trip for category list: %w", err)
	}

	categories, err := s.categoryRepo.ListCategoriesByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories in service: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, tripID, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category for update: %w", err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.BudgetPercentage != nil {
		if err := validateBudgetPercentage(*req.BudgetPercentage); err != nil {
			return nil, err
		}
		category.BudgetPercentage = *req.BudgetPercentage
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}

	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = requestingUserID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "failed to update category", "category_id", categoryID)
		return nil, fmt.Errorf("failed to update category in service: %w", err)
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, tripID, categoryID string) error {
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID, tripID); err != nil {
		return fmt.Errorf("failed to delete category in service: %w", err)
	}
	return nil
}
