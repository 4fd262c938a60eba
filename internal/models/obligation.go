package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation is the persisted document shape for the "payouts" collection.
// The amount stays in the expense's original currency; conversion is a
// read-time concern.
type Obligation struct {
	TripID    string          `json:"tripId"`
	ExpenseID string          `json:"expenseId"`
	OwedBy    string          `json:"owedBy"`
	OwedTo    string          `json:"owedTo"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Settled   bool            `json:"settled"`
	CreatedAt time.Time       `json:"createdAt"`
}
