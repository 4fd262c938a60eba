package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/triptab/tripledger/internal/core/domain"
	portsrepo "github.com/triptab/tripledger/internal/core/ports/repositories"
	portssvc "github.com/triptab/tripledger/internal/core/ports/services"
	"github.com/triptab/tripledger/internal/dto"
	"github.com/triptab/tripledger/internal/middleware"
)

const defaultTripListLimit = 20

// TripService handles the trip lifecycle.
type TripService struct {
	tripRepo      portsrepo.TripRepositoryFacade
	membershipSvc portssvc.MembershipSvcFacade
}

// NewTripService creates a new TripService.
func NewTripService(tripRepo portsrepo.TripRepositoryFacade, membershipSvc portssvc.MembershipSvcFacade) *TripService {
	return &TripService{
		tripRepo:      tripRepo,
		membershipSvc: membershipSvc,
	}
}

var _ portssvc.TripSvcFacade = (*TripService)(nil)

// CreateTrip persists a new trip and registers the organizer as its first
// member, so a freshly created trip is never memberless.
func (s *TripService) CreateTrip(ctx context.Context, req dto.CreateTripRequest, organizerID string) (*domain.Trip, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	trip := domain.Trip{
		TripID:      uuid.NewString(),
		Name:        req.Name,
		Country:     req.Country,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		OrganizerID: organizerID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tripRepo.SaveTrip(ctx, trip); err != nil {
		logger.Error("Failed to save trip", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	if _, _, err := s.membershipSvc.JoinTrip(ctx, trip.TripID, organizerID); err != nil {
		logger.Error("Failed to register organizer as member", slog.String("error", err.Error()), slog.String("trip_id", trip.TripID))
		return nil, fmt.Errorf("failed to register organizer for trip %s: %w", trip.TripID, err)
	}

	logger.Info("Trip created", slog.String("trip_id", trip.TripID), slog.String("organizer_id", organizerID))
	return &trip, nil
}

// GetTripByID retrieves a trip by its id.
func (s *TripService) GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	return s.tripRepo.FindTripByID(ctx, tripID)
}

// ListTrips retrieves trips newest first.
func (s *TripService) ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit <= 0 {
		limit = defaultTripListLimit
	}
	if offset < 0 {
		offset = 0
	}

	trips, err := s.tripRepo.ListTrips(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list trips", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}
