package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/triptab/tripledger/internal/apperrors"
	"github.com/triptab/tripledger/internal/core/domain"
	portsrepo "github.com/triptab/tripledger/internal/core/ports/repositories"
	"github.com/triptab/tripledger/internal/models"
	"github.com/triptab/tripledger/internal/utils/mapping"
)

// MemberRepository implements the ports.MemberRepositoryFacade over the
// generic record store.
type MemberRepository struct {
	store portsrepo.Store
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(store portsrepo.Store) *MemberRepository {
	return &MemberRepository{store: store}
}

var _ portsrepo.MemberRepositoryFacade = (*MemberRepository)(nil)

// SaveMember persists a new membership row. The member id is derived from
// (tripId, identityId) upstream, so the store's duplicate-id rejection acts
// as the uniqueness constraint on that pair.
func (r *MemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	_, err := r.store.CreateRecord(ctx, collectionMembers, member.MemberID, mapping.ToModelMember(member))
	if err != nil {
		// ErrDuplicate must reach the registrar untouched.
		return err
	}
	return nil
}

// FindMemberByID retrieves a membership row by its id.
func (r *MemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	rec, err := r.store.GetRecord(ctx, collectionMembers, memberID)
	if err != nil {
		return nil, err
	}
	return r.decode(rec)
}

// FindMemberByTripAndIdentity retrieves the membership row for the pair, or
// apperrors.ErrNotFound.
func (r *MemberRepository) FindMemberByTripAndIdentity(ctx context.Context, tripID, identityID string) (*domain.Member, error) {
	recs, err := r.store.ListRecords(ctx, collectionMembers, portsrepo.ListOptions{
		Filters: []portsrepo.Filter{
			portsrepo.Equal("tripId", tripID),
			portsrepo.Equal("identityId", identityID),
		},
		Limit: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up membership for trip %s: %w", tripID, err)
	}
	if len(recs) == 0 {
		return nil, apperrors.NewNotFoundError("member not found for trip " + tripID)
	}
	return r.decode(&recs[0])
}

// ListMembersByTrip retrieves every current member of a trip.
func (r *MemberRepository) ListMembersByTrip(ctx context.Context, tripID string) ([]domain.Member, error) {
	recs, err := r.store.ListRecords(ctx, collectionMembers, portsrepo.ListOptions{
		Filters:      []portsrepo.Filter{portsrepo.Equal("tripId", tripID)},
		OrderByField: "createdAt",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list members for trip %s: %w", tripID, err)
	}
	members := make([]domain.Member, 0, len(recs))
	for i := range recs {
		m, err := r.decode(&recs[i])
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, nil
}

func (r *MemberRepository) decode(rec *portsrepo.Record) (*domain.Member, error) {
	var m models.Member
	if err := json.Unmarshal(rec.Data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode member record %s: %w", rec.ID, err)
	}
	member := mapping.ToDomainMember(rec.ID, m)
	return &member, nil
}
