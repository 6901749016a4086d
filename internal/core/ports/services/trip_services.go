package services

import (
	"context"

	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	"github.com/tripweaver/trip_budget_app/internal/dto"
)

// TripReaderSvc defines read operations for trip data
type TripReaderSvc interface {
	// GetTripByID retrieves a specific trip by its ID.
	GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error)

	// ListTrips retrieves a paginated list of trips.
	ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error)
}

// TripWriterSvc defines write operations for trip data
type TripWriterSvc interface {
	// CreateTrip persists a new trip with its default categories. A missing
	// total or daily budget is derived from the other via the trip length.
	CreateTrip(ctx context.Context, req dto.CreateTripRequest, creatorUserID string) (*domain.Trip, error)

	// UpdateTrip updates trip details, re-deriving budgets when dates or
	// either budget figure change.
	UpdateTrip(ctx context.Context, tripID string, req dto.UpdateTripRequest, requestingUserID string) (*domain.Trip, error)

	// DeleteTrip removes a trip along with its categories and expenses.
	DeleteTrip(ctx context.Context, tripID string) error
}

// TripSvcFacade combines all trip-related service interfaces
type TripSvcFacade interface {
	TripReaderSvc
	TripWriterSvc
}
