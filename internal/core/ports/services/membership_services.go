package services

import (
	"context"

	"github.com/triptab/tripledger/internal/core/domain"
)

// MembershipSvcFacade registers member identities with trips. It is the
// identity substrate the ledger's owed-by/owed-to fields rely on.
type MembershipSvcFacade interface {
	// JoinTrip idempotently associates identityID with the trip. The returned
	// flag is true when a new membership row was created, false when the
	// identity was already a member (re-invitation is a no-op). Fails with
	// apperrors.ErrNotFound if the trip does not exist.
	JoinTrip(ctx context.Context, tripID, identityID string) (*domain.Member, bool, error)

	// ListMembers retrieves every current member of a trip.
	ListMembers(ctx context.Context, tripID string) ([]domain.Member, error)
}
