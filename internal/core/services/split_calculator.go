package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/triptab/tripledger/internal/core/domain"
)

var (
	ErrInvalidSplit         = errors.New("invalid split: expense amount must be positive")
	ErrPayerNotMember       = errors.New("payer is not a member of the trip")
	ErrParticipantNotMember = errors.New("participant is not a member of the trip")
	ErrEmptyParticipants    = errors.New("subset split requires at least one participant")
	ErrAmountPrecision      = errors.New("amount has more precision than the currency supports")
)

// ObligationDraft is one computed share before the ledger assigns ids and
// persists it.
type ObligationDraft struct {
	OwedBy string
	OwedTo string
	Amount decimal.Decimal
}

// SplitCalculator computes the set of pairwise obligations for one expense.
// It is pure: resolving the effective participant set and distributing the
// amount never touches the store.
type SplitCalculator struct{}

// NewSplitCalculator creates a new SplitCalculator.
func NewSplitCalculator() *SplitCalculator {
	return &SplitCalculator{}
}

// ComputeShares divides the expense amount equally among the effective
// participants, in minor units of the expense currency.
//
// The effective participants are all trip members except the payer (ALL
// mode) or the deduplicated subset list with the payer removed (SUBSET
// mode) - the payer never owes themself. An empty effective set is not an
// error: the payer absorbed the whole cost and no obligations are drafted.
//
// The division remainder is distributed deterministically: participants are
// sorted by member id and the first k receive one extra minor unit, so the
// drafted amounts always reconstitute the expense amount exactly.
func (c *SplitCalculator) ComputeShares(expense domain.Expense, tripMembers []domain.Member, minorUnits int) ([]ObligationDraft, error) {
	if expense.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidSplit
	}

	memberSet := make(map[string]struct{}, len(tripMembers))
	for _, m := range tripMembers {
		memberSet[m.MemberID] = struct{}{}
	}
	if _, ok := memberSet[expense.PayerID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrPayerNotMember, expense.PayerID)
	}

	participants, err := effectiveParticipants(expense, tripMembers, memberSet)
	if err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		// Fully absorbed by the payer.
		return []ObligationDraft{}, nil
	}

	totalUnits := expense.Amount.Shift(int32(minorUnits))
	if !totalUnits.IsInteger() {
		return nil, fmt.Errorf("%w: %s", ErrAmountPrecision, expense.Amount)
	}
	total := totalUnits.IntPart()

	// Remainder policy: sorted by stable identity, first k participants get
	// one extra minor unit.
	sort.Strings(participants)

	n := int64(len(participants))
	base := total / n
	remainder := total % n

	drafts := make([]ObligationDraft, 0, len(participants))
	for i, memberID := range participants {
		units := base
		if int64(i) < remainder {
			units++
		}
		if units == 0 {
			// A share below one minor unit rounds to nothing owed; dropping
			// it keeps every obligation amount strictly positive while the
			// remainder distribution above preserves conservation.
			continue
		}
		drafts = append(drafts, ObligationDraft{
			OwedBy: memberID,
			OwedTo: expense.PayerID,
			Amount: decimal.New(units, -int32(minorUnits)),
		})
	}
	return drafts, nil
}

// effectiveParticipants resolves the split mode to the concrete set of
// member ids that owe a share, payer excluded in every mode.
func effectiveParticipants(expense domain.Expense, tripMembers []domain.Member, memberSet map[string]struct{}) ([]string, error) {
	switch expense.SplitMode {
	case domain.SplitAll:
		participants := make([]string, 0, len(tripMembers))
		for _, m := range tripMembers {
			if m.MemberID == expense.PayerID {
				continue
			}
			participants = append(participants, m.MemberID)
		}
		return participants, nil

	case domain.SplitSubset:
		if len(expense.ParticipantIDs) == 0 {
			return nil, ErrEmptyParticipants
		}
		seen := make(map[string]struct{}, len(expense.ParticipantIDs))
		participants := make([]string, 0, len(expense.ParticipantIDs))
		for _, id := range expense.ParticipantIDs {
			if id == expense.PayerID {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			if _, ok := memberSet[id]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrParticipantNotMember, id)
			}
			seen[id] = struct{}{}
			participants = append(participants, id)
		}
		return participants, nil

	default:
		return nil, fmt.Errorf("unknown split mode %q", expense.SplitMode)
	}
}
