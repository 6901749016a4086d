package mapping

import (
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	"github.com/tripweaver/trip_budget_app/internal/models"
)

// ToModelTrip converts a domain Trip to a model Trip
func ToModelTrip(d domain.Trip) models.Trip {
	return models.Trip{
		TripID:       d.TripID,
		Name:         d.Name,
		Description:  d.Description,
		CurrencyCode: d.CurrencyCode,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		TotalBudget:  d.TotalBudget,
		DailyBudget:  d.DailyBudget,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTrip converts a model Trip to a domain Trip
func ToDomainTrip(m models.Trip) domain.Trip {
	return domain.Trip{
		TripID:       m.TripID,
		Name:         m.Name,
		Description:  m.Description,
		CurrencyCode: m.CurrencyCode,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		TotalBudget:  m.TotalBudget,
		DailyBudget:  m.DailyBudget,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
