package services

import (
	"context"

	"github.com/triptab/tripledger/internal/core/domain"
	"github.com/triptab/tripledger/internal/dto"
)

// LedgerSvcFacade orchestrates expense recording and the resulting
// pairwise-obligation ledger.
type LedgerSvcFacade interface {
	// RecordExpense validates the input, persists the expense, computes the
	// split, and persists the obligation batch. Validation failures reject
	// before anything is written. A store failure mid-batch surfaces as
	// *apperrors.PartialWriteError carrying the expense id so the caller can
	// re-drive CompleteExpense.
	RecordExpense(ctx context.Context, tripID string, req dto.CreateExpenseRequest) (*domain.Expense, []domain.Obligation, error)

	// CompleteExpense idempotently re-drives obligation creation for an
	// expense whose batch may be incomplete. Obligations already written are
	// left untouched; it returns the full obligation set for the expense.
	CompleteExpense(ctx context.Context, expenseID string) ([]domain.Obligation, error)

	// SettleObligation flips the settled flag. Fails with
	// apperrors.ErrNotFound for an unknown id; settling an already-settled
	// obligation is a no-op.
	SettleObligation(ctx context.Context, obligationID string) error

	// ListExpenses retrieves a trip's expenses, newest first.
	ListExpenses(ctx context.Context, tripID string) ([]domain.Expense, error)

	// ListObligations retrieves a trip's obligations, optionally narrowed by
	// settlement state.
	ListObligations(ctx context.Context, tripID string, settled *bool) ([]domain.Obligation, error)

	// GetTripSummary converts totals and outstanding balances into the
	// requested display currency. Conversion happens at read time only;
	// stored amounts keep their original currency.
	GetTripSummary(ctx context.Context, tripID, displayCurrency string) (*dto.TripSummaryResponse, error)
}
