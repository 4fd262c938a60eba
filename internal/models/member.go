package models

import "time"

// Member is the persisted document shape for the "trip_members" collection.
type Member struct {
	TripID     string    `json:"tripId"`
	IdentityID string    `json:"identityId"`
	CreatedAt  time.Time `json:"createdAt"`
}
