package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/triptab/tripledger/internal/core/domain"
	portsrepo "github.com/triptab/tripledger/internal/core/ports/repositories"
	"github.com/triptab/tripledger/internal/models"
	"github.com/triptab/tripledger/internal/utils/mapping"
)

// ObligationRepository implements the ports.ObligationRepositoryFacade over
// the generic record store.
type ObligationRepository struct {
	store portsrepo.Store
}

// NewObligationRepository creates a new ObligationRepository.
func NewObligationRepository(store portsrepo.Store) *ObligationRepository {
	return &ObligationRepository{store: store}
}

var _ portsrepo.ObligationRepositoryFacade = (*ObligationRepository)(nil)

// SaveObligation persists a new obligation. The obligation id is derived from
// (expenseId, owedBy) upstream, so a retried batch hits the store's
// duplicate-id rejection instead of double-booking debt.
func (r *ObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	_, err := r.store.CreateRecord(ctx, collectionObligations, obligation.ObligationID, mapping.ToModelObligation(obligation))
	if err != nil {
		// ErrDuplicate must reach the ledger untouched.
		return err
	}
	return nil
}

// UpdateObligation rewrites an existing obligation document.
func (r *ObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	_, err := r.store.UpdateRecord(ctx, collectionObligations, obligation.ObligationID, mapping.ToModelObligation(obligation))
	if err != nil {
		return fmt.Errorf("failed to update obligation %s: %w", obligation.ObligationID, err)
	}
	return nil
}

// FindObligationByID retrieves an obligation by its id.
func (r *ObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	rec, err := r.store.GetRecord(ctx, collectionObligations, obligationID)
	if err != nil {
		return nil, err
	}
	return r.decode(rec)
}

// ListObligationsByExpense retrieves the obligations generated from one expense.
func (r *ObligationRepository) ListObligationsByExpense(ctx context.Context, expenseID string) ([]domain.Obligation, error) {
	recs, err := r.store.ListRecords(ctx, collectionObligations, portsrepo.ListOptions{
		Filters:      []portsrepo.Filter{portsrepo.Equal("expenseId", expenseID)},
		OrderByField: "owedBy",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations for expense %s: %w", expenseID, err)
	}
	return r.decodeAll(recs)
}

// ListObligationsByTrip retrieves a trip's obligations, optionally narrowed
// by settlement state.
func (r *ObligationRepository) ListObligationsByTrip(ctx context.Context, tripID string, settled *bool) ([]domain.Obligation, error) {
	filters := []portsrepo.Filter{portsrepo.Equal("tripId", tripID)}
	if settled != nil {
		filters = append(filters, portsrepo.Equal("settled", strconv.FormatBool(*settled)))
	}
	recs, err := r.store.ListRecords(ctx, collectionObligations, portsrepo.ListOptions{
		Filters:      filters,
		OrderByField: "createdAt",
		OrderDesc:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations for trip %s: %w", tripID, err)
	}
	return r.decodeAll(recs)
}

func (r *ObligationRepository) decode(rec *portsrepo.Record) (*domain.Obligation, error) {
	var m models.Obligation
	if err := json.Unmarshal(rec.Data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode obligation record %s: %w", rec.ID, err)
	}
	obligation := mapping.ToDomainObligation(rec.ID, m)
	return &obligation, nil
}

func (r *ObligationRepository) decodeAll(recs []portsrepo.Record) ([]domain.Obligation, error) {
	obligations := make([]domain.Obligation, 0, len(recs))
	for i := range recs {
		o, err := r.decode(&recs[i])
		if err != nil {
			return nil, err
		}
		obligations = append(obligations, *o)
	}
	return obligations, nil
}
