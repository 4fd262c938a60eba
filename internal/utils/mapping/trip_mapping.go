package mapping

import (
	"github.com/triptab/tripledger/internal/core/domain"
	"github.com/triptab/tripledger/internal/models"
)

// ToModelTrip converts a domain Trip to its persisted document shape.
func ToModelTrip(d domain.Trip) models.Trip {
	return models.Trip{
		Name:        d.Name,
		Country:     d.Country,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		OrganizerID: d.OrganizerID,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainTrip converts a persisted trip document back to the domain type.
func ToDomainTrip(recordID string, m models.Trip) domain.Trip {
	return domain.Trip{
		TripID:      recordID,
		Name:        m.Name,
		Country:     m.Country,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		OrganizerID: m.OrganizerID,
		CreatedAt:   m.CreatedAt,
	}
}
