package domain

import "github.com/shopspring/decimal"

// Category is a per-trip budget bucket. BudgetPercentage is the share
// (0-100) of the trip's daily/total budget allocated to it; a zero value
// means no allocation is configured.
type Category struct {
	CategoryID       string          `json:"categoryID"`
	TripID           string          `json:"tripID"`
	Name             string          `json:"name"`
	Color            string          `json:"color"` // hex color, e.g. "#FF5733"
	Icon             string          `json:"icon,omitempty"`
	BudgetPercentage decimal.Decimal `json:"budgetPercentage"`
	IsDefault        bool            `json:"isDefault"`
	DisplayOrder     int             `json:"displayOrder"`
	AuditFields
}
