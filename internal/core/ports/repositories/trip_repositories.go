package repositories

import (
	"context"

	"github.com/triptab/tripledger/internal/core/domain"
)

// TripReader defines read operations for trip data.
type TripReader interface {
	// FindTripByID retrieves a specific trip by its id.
	FindTripByID(ctx context.Context, tripID string) (*domain.Trip, error)

	// ListTrips retrieves trips ordered by creation time, newest first.
	ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error)
}

// TripWriter defines write operations for trip data.
type TripWriter interface {
	// SaveTrip persists a new trip.
	SaveTrip(ctx context.Context, trip domain.Trip) error
}

// TripRepositoryFacade combines all trip-related repository interfaces.
type TripRepositoryFacade interface {
	TripReader
	TripWriter
}
