package services

import (
	"context"

	"github.com/triptab/tripledger/internal/core/domain"
	"github.com/triptab/tripledger/internal/dto"
)

// TripSvcFacade exposes trip lifecycle operations. Trip contents are only
// ever created here; editing screens are external collaborators.
type TripSvcFacade interface {
	// CreateTrip persists a new trip and registers the organizer as its first
	// member.
	CreateTrip(ctx context.Context, req dto.CreateTripRequest, organizerID string) (*domain.Trip, error)

	// GetTripByID retrieves a trip, or apperrors.ErrNotFound.
	GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error)

	// ListTrips retrieves trips newest first.
	ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error)
}
