package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation is a directed debt record generated from an expense's split:
// OwedBy owes OwedTo the given amount, always in the expense's original
// currency. Obligations are immutable except for the Settled flag.
type Obligation struct {
	ObligationID string          `json:"obligationId"`
	TripID       string          `json:"tripId"`
	ExpenseID    string          `json:"expenseId"`
	OwedBy       string          `json:"owedBy"` // Member id of the debtor
	OwedTo       string          `json:"owedTo"` // Member id of the payer
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency"`
	Settled      bool            `json:"settled"`
	CreatedAt    time.Time       `json:"createdAt"`
}
