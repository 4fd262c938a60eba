package models

import "time"

// Trip is the persisted document shape for the "trips" collection. The
// record id lives on the store record, not in the payload.
type Trip struct {
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	OrganizerID string    `json:"organizerId"`
	CreatedAt   time.Time `json:"createdAt"`
}
