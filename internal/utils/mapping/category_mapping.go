package mapping

import (
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	"github.com/tripweaver/trip_budget_app/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:       d.CategoryID,
		TripID:           d.TripID,
		Name:             d.Name,
		Color:            d.Color,
		Icon:             d.Icon,
		BudgetPercentage: d.BudgetPercentage,
		IsDefault:        d.IsDefault,
		DisplayOrder:     d.DisplayOrder,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:       m.CategoryID,
		TripID:           m.TripID,
		Name:             m.Name,
		Color:            m.Color,
		Icon:             m.Icon,
		BudgetPercentage: m.BudgetPercentage,
		IsDefault:        m.IsDefault,
		DisplayOrder:     m.DisplayOrder,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
