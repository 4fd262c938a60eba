package dto

import (
	"time"

	"github.com/triptab/tripledger/internal/core/domain"
)

// JoinTripResponse defines the result of a join operation. Created is false
// when the identity was already a member of the trip.
type JoinTripResponse struct {
	MemberID string    `json:"memberId"`
	Created  bool      `json:"created"`
	JoinedAt time.Time `json:"joinedAt"`
}

// MemberResponse defines the data returned for a trip member.
type MemberResponse struct {
	MemberID   string    `json:"memberId"`
	TripID     string    `json:"tripId"`
	IdentityID string    `json:"identityId"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// ToMemberResponse converts a domain Member to a MemberResponse DTO.
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:   m.MemberID,
		TripID:     m.TripID,
		IdentityID: m.IdentityID,
		JoinedAt:   m.JoinedAt,
	}
}

// ToListMemberResponse converts a slice of domain Members to MemberResponse DTOs.
func ToListMemberResponse(members []domain.Member) []MemberResponse {
	res := make([]MemberResponse, len(members))
	for i := range members {
		res[i] = ToMemberResponse(&members[i])
	}
	return res
}
