package models

import "github.com/shopspring/decimal"

// Category is the database representation of a per-trip budget category.
type Category struct {
	CategoryID       string          `json:"categoryID"` // Primary Key (UUID)
	TripID           string          `json:"tripID"`     // FK -> Trip.tripID
	Name             string          `json:"name"`
	Color            string          `json:"color"`
	Icon             string          `json:"icon"`
	BudgetPercentage decimal.Decimal `json:"budgetPercentage"`
	IsDefault        bool            `json:"isDefault"`
	DisplayOrder     int             `json:"displayOrder"`
	AuditFields
}
