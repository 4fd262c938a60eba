package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/triptab/tripledger/internal/apperrors"
	"github.com/triptab/tripledger/internal/core/domain"
	portsrepo "github.com/triptab/tripledger/internal/core/ports/repositories"
	portssvc "github.com/triptab/tripledger/internal/core/ports/services"
	"github.com/triptab/tripledger/internal/dto"
	"github.com/triptab/tripledger/internal/middleware"
)

// obligationNamespace seeds the deterministic obligation id derived from
// (expenseId, owedBy). Recording and completion derive identical ids for the
// same share, so a retried batch can only collide with rows it already wrote.
var obligationNamespace = uuid.MustParse("3f6d9a0e-2b84-41c7-8e15-c09a4d7e6b21")

// ObligationIDFor derives the stable obligation record id for one share of an
// expense.
func ObligationIDFor(expenseID, owedBy string) string {
	return uuid.NewSHA1(obligationNamespace, []byte(expenseID+"/"+owedBy)).String()
}

// LedgerService orchestrates expense recording and the pairwise-obligation
// settlement ledger built from it.
type LedgerService struct {
	tripRepo       portsrepo.TripReader
	memberRepo     portsrepo.MemberReader
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	obligationRepo portsrepo.ObligationRepositoryFacade
	currencySvc    portssvc.CurrencySvcFacade
	calculator     *SplitCalculator
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	tripRepo portsrepo.TripReader,
	memberRepo portsrepo.MemberReader,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	obligationRepo portsrepo.ObligationRepositoryFacade,
	currencySvc portssvc.CurrencySvcFacade,
	calculator *SplitCalculator,
) *LedgerService {
	return &LedgerService{
		tripRepo:       tripRepo,
		memberRepo:     memberRepo,
		expenseRepo:    expenseRepo,
		obligationRepo: obligationRepo,
		currencySvc:    currencySvc,
		calculator:     calculator,
	}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// RecordExpense validates the request, persists the expense, computes the
// split, and persists the obligation batch.
//
// All validation, including the dry-run of the split itself, happens before
// the first write: a rejected request leaves nothing behind. If the store
// fails mid-batch the error is a *apperrors.PartialWriteError carrying the
// expense id, and CompleteExpense re-drives the remainder idempotently.
func (s *LedgerService) RecordExpense(ctx context.Context, tripID string, req dto.CreateExpenseRequest) (*domain.Expense, []domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.tripRepo.FindTripByID(ctx, tripID); err != nil {
		return nil, nil, err
	}

	currency, err := s.currencySvc.GetCurrencyByCode(req.Currency)
	if err != nil {
		return nil, nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, apperrors.NewValidationError("expense amount must be positive")
	}

	category := req.Category
	if category == "" {
		category = domain.DefaultCategory
	}

	members, err := s.memberRepo.ListMembersByTrip(ctx, tripID)
	if err != nil {
		logger.Error("Failed to list members for split", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		return nil, nil, fmt.Errorf("failed to list members for trip %s: %w", tripID, err)
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:      uuid.NewString(),
		TripID:         tripID,
		Name:           req.Name,
		Amount:         req.Amount,
		CurrencyCode:   req.Currency,
		Category:       category,
		PayerID:        req.PayerID,
		SplitMode:      domain.SplitMode(req.SplitMode),
		ParticipantIDs: req.ParticipantIDs,
		CreatedAt:      now,
	}

	drafts, err := s.calculator.ComputeShares(expense, members, currency.MinorUnits)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		return nil, nil, fmt.Errorf("failed to save expense: %w", err)
	}

	obligations := make([]domain.Obligation, 0, len(drafts))
	for i, draft := range drafts {
		obligation := domain.Obligation{
			ObligationID: ObligationIDFor(expense.ExpenseID, draft.OwedBy),
			TripID:       tripID,
			ExpenseID:    expense.ExpenseID,
			OwedBy:       draft.OwedBy,
			OwedTo:       draft.OwedTo,
			Amount:       draft.Amount,
			CurrencyCode: expense.CurrencyCode,
			Settled:      false,
			CreatedAt:    now,
		}
		if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Already written by an earlier attempt for the same share.
				obligations = append(obligations, obligation)
				continue
			}
			logger.Error("Obligation batch interrupted",
				slog.String("error", err.Error()),
				slog.String("expense_id", expense.ExpenseID),
				slog.Int("written", i),
				slog.Int("expected", len(drafts)))
			return nil, nil, apperrors.NewPartialWriteError(expense.ExpenseID, i, len(drafts), err)
		}
		obligations = append(obligations, obligation)
	}

	logger.Info("Expense recorded",
		slog.String("trip_id", tripID),
		slog.String("expense_id", expense.ExpenseID),
		slog.Int("obligations", len(obligations)))
	return &expense, obligations, nil
}

// CompleteExpense re-drives obligation creation for an expense whose batch may
// be incomplete. Shares are recomputed from the stored expense and written
// with the same deterministic ids as the original attempt, so rows that
// already exist are skipped rather than duplicated. It returns the full
// obligation set for the expense.
func (s *LedgerService) CompleteExpense(ctx context.Context, expenseID string) ([]domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	currency, err := s.currencySvc.GetCurrencyByCode(expense.CurrencyCode)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListMembersByTrip(ctx, expense.TripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for trip %s: %w", expense.TripID, err)
	}

	drafts, err := s.calculator.ComputeShares(*expense, members, currency.MinorUnits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	created := 0
	for _, draft := range drafts {
		obligation := domain.Obligation{
			ObligationID: ObligationIDFor(expense.ExpenseID, draft.OwedBy),
			TripID:       expense.TripID,
			ExpenseID:    expense.ExpenseID,
			OwedBy:       draft.OwedBy,
			OwedTo:       draft.OwedTo,
			Amount:       draft.Amount,
			CurrencyCode: expense.CurrencyCode,
			Settled:      false,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return nil, apperrors.NewPartialWriteError(expense.ExpenseID, created, len(drafts), err)
		}
		created++
	}
	if created > 0 {
		logger.Info("Obligation batch completed", slog.String("expense_id", expenseID), slog.Int("created", created))
	}

	return s.obligationRepo.ListObligationsByExpense(ctx, expenseID)
}

// SettleObligation marks an obligation settled. Settling an already-settled
// obligation is a no-op, so retried settle calls converge on the same state.
func (s *LedgerService) SettleObligation(ctx context.Context, obligationID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return err
	}
	if obligation.Settled {
		logger.Debug("Obligation already settled", slog.String("obligation_id", obligationID))
		return nil
	}

	obligation.Settled = true
	if err := s.obligationRepo.UpdateObligation(ctx, *obligation); err != nil {
		logger.Error("Failed to settle obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		return fmt.Errorf("failed to settle obligation %s: %w", obligationID, err)
	}

	logger.Info("Obligation settled", slog.String("obligation_id", obligationID))
	return nil
}

// ListExpenses retrieves a trip's expenses, newest first.
func (s *LedgerService) ListExpenses(ctx context.Context, tripID string) ([]domain.Expense, error) {
	if _, err := s.tripRepo.FindTripByID(ctx, tripID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListExpensesByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for trip %s: %w", tripID, err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nil
}

// ListObligations retrieves a trip's obligations, optionally narrowed by
// settlement state.
func (s *LedgerService) ListObligations(ctx context.Context, tripID string, settled *bool) ([]domain.Obligation, error) {
	if _, err := s.tripRepo.FindTripByID(ctx, tripID); err != nil {
		return nil, err
	}
	obligations, err := s.obligationRepo.ListObligationsByTrip(ctx, tripID, settled)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations for trip %s: %w", tripID, err)
	}
	if obligations == nil {
		obligations = []domain.Obligation{}
	}
	return obligations, nil
}

// GetTripSummary aggregates a trip's ledger into the requested display
// currency. Stored amounts keep their original currency; conversion and
// rounding happen here, at read time, and nowhere else.
func (s *LedgerService) GetTripSummary(ctx context.Context, tripID, displayCurrency string) (*dto.TripSummaryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.tripRepo.FindTripByID(ctx, tripID); err != nil {
		return nil, err
	}
	if displayCurrency == "" {
		displayCurrency = s.currencySvc.BaseCurrency()
	}
	display, err := s.currencySvc.GetCurrencyByCode(displayCurrency)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.ListExpensesByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for trip %s: %w", tripID, err)
	}
	obligations, err := s.obligationRepo.ListObligationsByTrip(ctx, tripID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations for trip %s: %w", tripID, err)
	}
	members, err := s.memberRepo.ListMembersByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for trip %s: %w", tripID, err)
	}

	totalSpent := decimal.Zero
	for _, e := range expenses {
		converted, err := s.currencySvc.Convert(e.Amount, e.CurrencyCode, displayCurrency)
		if err != nil {
			logger.Error("Failed to convert expense amount", slog.String("error", err.Error()), slog.String("expense_id", e.ExpenseID))
			return nil, err
		}
		totalSpent = totalSpent.Add(converted)
	}

	owes := make(map[string]decimal.Decimal, len(members))
	owedTo := make(map[string]decimal.Decimal, len(members))
	unsettled := 0
	for _, o := range obligations {
		if o.Settled {
			continue
		}
		unsettled++
		converted, err := s.currencySvc.Convert(o.Amount, o.CurrencyCode, displayCurrency)
		if err != nil {
			return nil, err
		}
		owes[o.OwedBy] = owes[o.OwedBy].Add(converted)
		owedTo[o.OwedTo] = owedTo[o.OwedTo].Add(converted)
	}

	places := int32(display.MinorUnits)
	balances := make([]dto.MemberBalance, 0, len(members))
	for _, m := range members {
		net := owedTo[m.MemberID].Sub(owes[m.MemberID]).Round(places)
		netDisplay, err := s.currencySvc.Format(net, displayCurrency)
		if err != nil {
			return nil, err
		}
		balances = append(balances, dto.MemberBalance{
			MemberID:   m.MemberID,
			IdentityID: m.IdentityID,
			Owes:       owes[m.MemberID].Round(places),
			OwedTo:     owedTo[m.MemberID].Round(places),
			Net:        net,
			NetDisplay: netDisplay,
		})
	}

	totalRounded := totalSpent.Round(places)
	totalDisplay, err := s.currencySvc.Format(totalRounded, displayCurrency)
	if err != nil {
		return nil, err
	}

	return &dto.TripSummaryResponse{
		TripID:            tripID,
		DisplayCurrency:   displayCurrency,
		TotalSpent:        totalRounded,
		TotalSpentDisplay: totalDisplay,
		ExpenseCount:      len(expenses),
		UnsettledCount:    unsettled,
		Balances:          balances,
	}, nil
}
