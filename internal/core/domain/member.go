package domain

import "time"

// Member is a trip-scoped identity record linking a person to a trip.
// It is distinct from whatever global profile the identity provider keeps.
// Exactly one Member row may exist per (TripID, IdentityID) pair.
type Member struct {
	MemberID   string    `json:"memberId"`
	TripID     string    `json:"tripId"`
	IdentityID string    `json:"identityId"` // opaque id supplied by the identity provider
	JoinedAt   time.Time `json:"joinedAt"`
}
