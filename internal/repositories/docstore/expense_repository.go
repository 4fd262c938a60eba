package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/triptab/tripledger/internal/core/domain"
	portsrepo "github.com/triptab/tripledger/internal/core/ports/repositories"
	"github.com/triptab/tripledger/internal/models"
	"github.com/triptab/tripledger/internal/utils/mapping"
)

// ExpenseRepository implements the ports.ExpenseRepositoryFacade over the
// generic record store.
type ExpenseRepository struct {
	store portsrepo.Store
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(store portsrepo.Store) *ExpenseRepository {
	return &ExpenseRepository{store: store}
}

var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

// SaveExpense persists a new expense document.
func (r *ExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	_, err := r.store.CreateRecord(ctx, collectionExpenses, expense.ExpenseID, mapping.ToModelExpense(expense))
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its id.
func (r *ExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	rec, err := r.store.GetRecord(ctx, collectionExpenses, expenseID)
	if err != nil {
		return nil, err
	}
	return r.decode(rec)
}

// ListExpensesByTrip retrieves a trip's expenses, newest first.
func (r *ExpenseRepository) ListExpensesByTrip(ctx context.Context, tripID string) ([]domain.Expense, error) {
	recs, err := r.store.ListRecords(ctx, collectionExpenses, portsrepo.ListOptions{
		Filters:      []portsrepo.Filter{portsrepo.Equal("tripId", tripID)},
		OrderByField: "createdAt",
		OrderDesc:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for trip %s: %w", tripID, err)
	}
	expenses := make([]domain.Expense, 0, len(recs))
	for i := range recs {
		e, err := r.decode(&recs[i])
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, nil
}

func (r *ExpenseRepository) decode(rec *portsrepo.Record) (*domain.Expense, error) {
	var m models.Expense
	if err := json.Unmarshal(rec.Data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode expense record %s: %w", rec.ID, err)
	}
	expense := mapping.ToDomainExpense(rec.ID, m)
	return &expense, nil
}
