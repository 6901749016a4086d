package repositories

import (
	"context"

	"github.com/tripweaver/trip_budget_app/internal/core/domain"
)

// TripReader defines read operations for trip data
type TripReader interface {
	// FindTripByID retrieves a trip by its ID.
	FindTripByID(ctx context.Context, tripID string) (*domain.Trip, error)

	// ListTrips retrieves all trips, most recent start date first.
	ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error)

	// ListDistinctCurrencies returns the distinct settlement currencies
	// across all trips. Used by the rate refresh job to limit provider
	// calls to one per base currency.
	ListDistinctCurrencies(ctx context.Context) ([]string, error)
}

// TripWriter defines write operations for trip data
type TripWriter interface {
	// SaveTrip persists a new trip.
	SaveTrip(ctx context.Context, trip domain.Trip) error

	// UpdateTrip persists changes to an existing trip.
	UpdateTrip(ctx context.Context, trip domain.Trip) error

	// DeleteTrip removes a trip and (via FK cascade) its categories and expenses.
	DeleteTrip(ctx context.Context, tripID string) error
}

// TripRepositoryFacade combines all trip-related repository interfaces
type TripRepositoryFacade interface {
	TripReader
	TripWriter
}
