package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/triptab/tripledger/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to record a new expense.
// ParticipantIDs is required for SUBSET mode and ignored for ALL mode, where
// the effective participants are resolved from current trip membership.
type CreateExpenseRequest struct {
	Name           string          `json:"name" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Currency       string          `json:"currency" binding:"required,uppercase,len=3"`
	Category       string          `json:"category"`
	PayerID        string          `json:"payerId" binding:"required"`
	SplitMode      string          `json:"splitMode" binding:"required,oneof=ALL SUBSET"`
	ParticipantIDs []string        `json:"participantIds" binding:"required_if=SplitMode SUBSET"`
}

// RecordExpenseResponse returns identifiers of everything created by a
// recordExpense call.
type RecordExpenseResponse struct {
	ExpenseID     string   `json:"expenseId"`
	ObligationIDs []string `json:"obligationIds"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID      string          `json:"expenseId"`
	TripID         string          `json:"tripId"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Category       string          `json:"category"`
	PayerID        string          `json:"payerId"`
	SplitMode      string          `json:"splitMode"`
	ParticipantIDs []string        `json:"participantIds,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToExpenseResponse converts a domain Expense to an ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:      e.ExpenseID,
		TripID:         e.TripID,
		Name:           e.Name,
		Amount:         e.Amount,
		Currency:       e.CurrencyCode,
		Category:       e.Category,
		PayerID:        e.PayerID,
		SplitMode:      string(e.SplitMode),
		ParticipantIDs: e.ParticipantIDs,
		CreatedAt:      e.CreatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain Expenses to ExpenseResponse DTOs.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}

// ObligationResponse defines the data returned for a ledger obligation.
type ObligationResponse struct {
	ObligationID string          `json:"obligationId"`
	TripID       string          `json:"tripId"`
	ExpenseID    string          `json:"expenseId"`
	OwedBy       string          `json:"owedBy"`
	OwedTo       string          `json:"owedTo"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Settled      bool            `json:"settled"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToObligationResponse converts a domain Obligation to an ObligationResponse DTO.
func ToObligationResponse(o *domain.Obligation) ObligationResponse {
	return ObligationResponse{
		ObligationID: o.ObligationID,
		TripID:       o.TripID,
		ExpenseID:    o.ExpenseID,
		OwedBy:       o.OwedBy,
		OwedTo:       o.OwedTo,
		Amount:       o.Amount,
		Currency:     o.CurrencyCode,
		Settled:      o.Settled,
		CreatedAt:    o.CreatedAt,
	}
}

// ToListObligationResponse converts a slice of domain Obligations to ObligationResponse DTOs.
func ToListObligationResponse(obligations []domain.Obligation) []ObligationResponse {
	res := make([]ObligationResponse, len(obligations))
	for i := range obligations {
		res[i] = ToObligationResponse(&obligations[i])
	}
	return res
}
