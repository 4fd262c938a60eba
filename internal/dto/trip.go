package dto

import (
	"time"

	"github.com/triptab/tripledger/internal/core/domain"
)

// CreateTripRequest defines the data needed to create a new trip.
type CreateTripRequest struct {
	Name      string    `json:"name" binding:"required"`
	Country   string    `json:"country" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtefield=StartDate"`
}

// TripResponse defines the data returned for a trip.
type TripResponse struct {
	TripID      string    `json:"tripId"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	OrganizerID string    `json:"organizerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToTripResponse converts a domain Trip to a TripResponse DTO.
func ToTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		TripID:      t.TripID,
		Name:        t.Name,
		Country:     t.Country,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		OrganizerID: t.OrganizerID,
		CreatedAt:   t.CreatedAt,
	}
}

// ToListTripResponse converts a slice of domain Trips to TripResponse DTOs.
func ToListTripResponse(trips []domain.Trip) []TripResponse {
	res := make([]TripResponse, len(trips))
	for i := range trips {
		res[i] = ToTripResponse(&trips[i])
	}
	return res
}
