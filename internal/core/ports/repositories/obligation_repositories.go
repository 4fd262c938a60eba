package repositories

import (
	"context"

	"github.com/triptab/tripledger/internal/core/domain"
)

// ObligationReader defines read operations for the obligation ledger.
type ObligationReader interface {
	// FindObligationByID retrieves a specific obligation by its id.
	FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// ListObligationsByExpense retrieves the obligations generated from one expense.
	ListObligationsByExpense(ctx context.Context, expenseID string) ([]domain.Obligation, error)

	// ListObligationsByTrip retrieves a trip's obligations. A non-nil settled
	// narrows the result to that settlement state.
	ListObligationsByTrip(ctx context.Context, tripID string, settled *bool) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for the obligation ledger.
type ObligationWriter interface {
	// SaveObligation persists a new obligation. Returns apperrors.ErrDuplicate
	// if an obligation with the same id already exists, which retried batches
	// treat as already written.
	SaveObligation(ctx context.Context, obligation domain.Obligation) error

	// UpdateObligation rewrites an existing obligation. Only the Settled flag
	// is ever expected to change.
	UpdateObligation(ctx context.Context, obligation domain.Obligation) error
}

// ObligationRepositoryFacade combines all obligation-related repository interfaces.
type ObligationRepositoryFacade interface {
	ObligationReader
	ObligationWriter
}
