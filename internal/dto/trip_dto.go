package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
)

// CreateTripRequest defines the structure for creating a new trip.
// Exactly one of TotalBudget/DailyBudget may be supplied; the other is
// derived from the trip length. Supplying both keeps both as given.
type CreateTripRequest struct {
	Name         string           `json:"name" binding:"required,max=255"`
	Description  string           `json:"description"`
	CurrencyCode string           `json:"currencyCode" binding:"required,iso4217"`
	StartDate    time.Time        `json:"startDate" binding:"required"`
	EndDate      time.Time        `json:"endDate" binding:"required"`
	TotalBudget  *decimal.Decimal `json:"totalBudget,omitempty"`
	DailyBudget  *decimal.Decimal `json:"dailyBudget,omitempty"`
}

// UpdateTripRequest defines the structure for updating a trip. Nil fields are
// left unchanged.
type UpdateTripRequest struct {
	Name        *string          `json:"name,omitempty" binding:"omitempty,max=255"`
	Description *string          `json:"description,omitempty"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
	TotalBudget *decimal.Decimal `json:"totalBudget,omitempty"`
	DailyBudget *decimal.Decimal `json:"dailyBudget,omitempty"`
}

// TripResponse defines the data returned for a trip.
type TripResponse struct {
	TripID        string          `json:"tripID"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CurrencyCode  string          `json:"currencyCode"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	TotalBudget   decimal.Decimal `json:"totalBudget"`
	DailyBudget   decimal.Decimal `json:"dailyBudget"`
	LengthDays    int             `json:"lengthDays"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToTripResponse converts a domain.Trip to TripResponse DTO
func ToTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		TripID:        trip.TripID,
		Name:          trip.Name,
		Description:   trip.Description,
		CurrencyCode:  trip.CurrencyCode,
		StartDate:     trip.StartDate,
		EndDate:       trip.EndDate,
		TotalBudget:   trip.TotalBudget,
		DailyBudget:   trip.DailyBudget,
		LengthDays:    trip.LengthDays(),
		CreatedAt:     trip.CreatedAt,
		CreatedBy:     trip.CreatedBy,
		LastUpdatedAt: trip.LastUpdatedAt,
		LastUpdatedBy: trip.LastUpdatedBy,
	}
}

// ToListTripResponse converts a slice of domain.Trip to a slice of TripResponse DTOs
func ToListTripResponse(trips []domain.Trip) []TripResponse {
	res := make([]TripResponse, len(trips))
	for i, trip := range trips {
		res[i] = ToTripResponse(&trip)
	}
	return res
}
