package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
)

// CreateCategoryRequest defines the structure for creating a new category.
type CreateCategoryRequest struct {
	Name             string           `json:"name" binding:"required,max=100"`
	Color            string           `json:"color" binding:"required,hexcolor"`
	Icon             string           `json:"icon"`
	BudgetPercentage *decimal.Decimal `json:"budgetPercentage,omitempty"`
	DisplayOrder     *int             `json:"displayOrder,omitempty"`
}

// UpdateCategoryRequest defines the structure for updating a category. Nil
// fields are left unchanged.
type UpdateCategoryRequest struct {
	Name             *string          `json:"name,omitempty" binding:"omitempty,max=100"`
	Color            *string          `json:"color,omitempty" binding:"omitempty,hexcolor"`
	Icon             *string          `json:"icon,omitempty"`
	BudgetPercentage *decimal.Decimal `json:"budgetPercentage,omitempty"`
	DisplayOrder     *int             `json:"displayOrder,omitempty"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID       string          `json:"categoryID"`
	TripID           string          `json:"tripID"`
	Name             string          `json:"name"`
	Color            string          `json:"color"`
	Icon             string          `json:"icon,omitempty"`
	BudgetPercentage decimal.Decimal `json:"budgetPercentage"`
	IsDefault        bool            `json:"isDefault"`
	DisplayOrder     int             `json:"displayOrder"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:       category.CategoryID,
		TripID:           category.TripID,
		Name:             category.Name,
		Color:            category.Color,
		Icon:             category.Icon,
		BudgetPercentage: category.BudgetPercentage,
		IsDefault:        category.IsDefault,
		DisplayOrder:     category.DisplayOrder,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to a slice of CategoryResponse DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		res[i] = ToCategoryResponse(&category)
	}
	return res
}
