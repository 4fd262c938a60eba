package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/triptab/tripledger/internal/apperrors"
	"github.com/triptab/tripledger/internal/core/domain"
	portsrepo "github.com/triptab/tripledger/internal/core/ports/repositories"
	portssvc "github.com/triptab/tripledger/internal/core/ports/services"
	"github.com/triptab/tripledger/internal/middleware"
	"github.com/triptab/tripledger/internal/utils/keyedmutex"
)

// memberNamespace seeds the deterministic member id derived from
// (tripId, identityId). The same pair always maps to the same record id, so
// the store's duplicate-id rejection doubles as the uniqueness constraint on
// membership.
var memberNamespace = uuid.MustParse("8b1f7c52-6c3e-4e0d-9c41-55b73f2a9d10")

// MemberIDFor derives the stable member record id for a (tripId, identityId) pair.
func MemberIDFor(tripID, identityID string) string {
	return uuid.NewSHA1(memberNamespace, []byte(tripID+"/"+identityID)).String()
}

// MembershipService idempotently associates member identities with trips.
type MembershipService struct {
	tripRepo   portsrepo.TripReader
	memberRepo portsrepo.MemberRepositoryFacade
	joinLocks  *keyedmutex.KeyedMutex
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(tripRepo portsrepo.TripReader, memberRepo portsrepo.MemberRepositoryFacade) *MembershipService {
	return &MembershipService{
		tripRepo:   tripRepo,
		memberRepo: memberRepo,
		joinLocks:  keyedmutex.New(),
	}
}

var _ portssvc.MembershipSvcFacade = (*MembershipService)(nil)

// JoinTrip registers identityID as a member of the trip. Re-joining is a
// no-op that returns the existing row with created=false.
//
// The check-then-create section is serialized per (tripId, identityId), and
// the member id is deterministic for the pair, so even a join racing on
// another process cannot produce a second row: the late writer hits
// ErrDuplicate and is handed the existing membership.
func (s *MembershipService) JoinTrip(ctx context.Context, tripID, identityID string) (*domain.Member, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if tripID == "" || identityID == "" {
		return nil, false, apperrors.NewValidationError("tripId and identityId are required")
	}

	if _, err := s.tripRepo.FindTripByID(ctx, tripID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to verify trip before join", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		}
		return nil, false, err
	}

	key := tripID + ":" + identityID
	s.joinLocks.Lock(key)
	defer s.joinLocks.Unlock(key)

	existing, err := s.memberRepo.FindMemberByTripAndIdentity(ctx, tripID, identityID)
	if err == nil {
		logger.Debug("Join is a no-op, identity already a member", slog.String("trip_id", tripID), slog.String("member_id", existing.MemberID))
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up existing membership", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		return nil, false, fmt.Errorf("failed to look up membership: %w", err)
	}

	member := domain.Member{
		MemberID:   MemberIDFor(tripID, identityID),
		TripID:     tripID,
		IdentityID: identityID,
		JoinedAt:   time.Now().UTC(),
	}
	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race against another process; the stored row wins.
			stored, findErr := s.memberRepo.FindMemberByID(ctx, member.MemberID)
			if findErr != nil {
				return nil, false, fmt.Errorf("failed to load membership after duplicate create: %w", findErr)
			}
			return stored, false, nil
		}
		logger.Error("Failed to save membership", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		return nil, false, fmt.Errorf("failed to save membership: %w", err)
	}

	logger.Info("Member joined trip", slog.String("trip_id", tripID), slog.String("member_id", member.MemberID))
	return &member, true, nil
}

// ListMembers retrieves every current member of a trip.
func (s *MembershipService) ListMembers(ctx context.Context, tripID string) ([]domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.tripRepo.FindTripByID(ctx, tripID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListMembersByTrip(ctx, tripID)
	if err != nil {
		logger.Error("Failed to list members", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		return nil, fmt.Errorf("failed to list members for trip %s: %w", tripID, err)
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}
