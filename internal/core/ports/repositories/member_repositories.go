package repositories

import (
	"context"

	"github.com/triptab/tripledger/internal/core/domain"
)

// MemberReader defines read operations for trip membership data.
type MemberReader interface {
	// FindMemberByID retrieves a membership record by its id.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByTripAndIdentity retrieves the membership row for the
	// (tripID, identityID) pair, or apperrors.ErrNotFound.
	FindMemberByTripAndIdentity(ctx context.Context, tripID, identityID string) (*domain.Member, error)

	// ListMembersByTrip retrieves every current member of a trip.
	ListMembersByTrip(ctx context.Context, tripID string) ([]domain.Member, error)
}

// MemberWriter defines write operations for trip membership data.
type MemberWriter interface {
	// SaveMember persists a new membership row. Returns apperrors.ErrDuplicate
	// if a row with the same member id already exists.
	SaveMember(ctx context.Context, member domain.Member) error
}

// MemberRepositoryFacade combines all membership-related repository interfaces.
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
