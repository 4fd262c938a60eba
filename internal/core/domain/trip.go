package domain

import "time"

// Trip is the top-level grouping of members and expenses for one journey.
// It is created once by an organizer and never deleted by the ledger.
type Trip struct {
	TripID      string    `json:"tripId"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	OrganizerID string    `json:"organizerId"` // identity of the creator, also the first member
	CreatedAt   time.Time `json:"createdAt"`
}
