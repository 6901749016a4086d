package mapping

import (
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	"github.com/tripweaver/trip_budget_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:            d.ExpenseID,
		TripID:               d.TripID,
		CategoryID:           d.CategoryID,
		Title:                d.Title,
		Description:          d.Description,
		Amount:               d.Amount,
		CurrencyCode:         d.CurrencyCode,
		ExchangeRate:         d.ExchangeRate,
		AmountInTripCurrency: d.AmountInTripCurrency,
		StartDate:            d.StartDate,
		EndDate:              d.EndDate,
		PaymentMethod:        d.PaymentMethod,
		Location:             d.Location,
		Notes:                d.Notes,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:            m.ExpenseID,
		TripID:               m.TripID,
		CategoryID:           m.CategoryID,
		Title:                m.Title,
		Description:          m.Description,
		Amount:               m.Amount,
		CurrencyCode:         m.CurrencyCode,
		ExchangeRate:         m.ExchangeRate,
		AmountInTripCurrency: m.AmountInTripCurrency,
		StartDate:            m.StartDate,
		EndDate:              m.EndDate,
		PaymentMethod:        m.PaymentMethod,
		Location:             m.Location,
		Notes:                m.Notes,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}
