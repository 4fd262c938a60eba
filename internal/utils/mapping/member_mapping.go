package mapping

import (
	"github.com/triptab/tripledger/internal/core/domain"
	"github.com/triptab/tripledger/internal/models"
)

// ToModelMember converts a domain Member to its persisted document shape.
func ToModelMember(d domain.Member) models.Member {
	return models.Member{
		TripID:     d.TripID,
		IdentityID: d.IdentityID,
		CreatedAt:  d.JoinedAt,
	}
}

// ToDomainMember converts a persisted membership document back to the domain type.
func ToDomainMember(recordID string, m models.Member) domain.Member {
	return domain.Member{
		MemberID:   recordID,
		TripID:     m.TripID,
		IdentityID: m.IdentityID,
		JoinedAt:   m.CreatedAt,
	}
}
