package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/triptab/tripledger/internal/core/domain"
	portsrepo "github.com/triptab/tripledger/internal/core/ports/repositories"
	"github.com/triptab/tripledger/internal/models"
	"github.com/triptab/tripledger/internal/utils/mapping"
)

// TripRepository implements the ports.TripRepositoryFacade over the generic
// record store.
type TripRepository struct {
	store portsrepo.Store
}

// NewTripRepository creates a new TripRepository.
func NewTripRepository(store portsrepo.Store) *TripRepository {
	return &TripRepository{store: store}
}

var _ portsrepo.TripRepositoryFacade = (*TripRepository)(nil)

// SaveTrip persists a new trip document.
func (r *TripRepository) SaveTrip(ctx context.Context, trip domain.Trip) error {
	_, err := r.store.CreateRecord(ctx, collectionTrips, trip.TripID, mapping.ToModelTrip(trip))
	if err != nil {
		return fmt.Errorf("failed to save trip %s: %w", trip.TripID, err)
	}
	return nil
}

// FindTripByID retrieves a trip by its id.
func (r *TripRepository) FindTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	rec, err := r.store.GetRecord(ctx, collectionTrips, tripID)
	if err != nil {
		return nil, err
	}
	var m models.Trip
	if err := json.Unmarshal(rec.Data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode trip record %s: %w", tripID, err)
	}
	trip := mapping.ToDomainTrip(rec.ID, m)
	return &trip, nil
}

// ListTrips retrieves trips ordered by creation time, newest first.
func (r *TripRepository) ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error) {
	recs, err := r.store.ListRecords(ctx, collectionTrips, portsrepo.ListOptions{
		OrderByField: "createdAt",
		OrderDesc:    true,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	trips := make([]domain.Trip, 0, len(recs))
	for _, rec := range recs {
		var m models.Trip
		if err := json.Unmarshal(rec.Data, &m); err != nil {
			return nil, fmt.Errorf("failed to decode trip record %s: %w", rec.ID, err)
		}
		trips = append(trips, mapping.ToDomainTrip(rec.ID, m))
	}
	return trips, nil
}
