package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitMode says whether an expense is divided among all trip members or an
// explicit subset. Represented as a tagged variant instead of the error-prone
// "split with everyone" boolean plus possibly-ignored member list.
type SplitMode string

const (
	SplitAll    SplitMode = "ALL"
	SplitSubset SplitMode = "SUBSET"
)

// DefaultCategory is applied when an expense arrives without a category.
const DefaultCategory = "Other"

// Categories lists the recognised expense categories.
var Categories = []string{
	"Food",
	"Transport",
	"Accommodation",
	"Entertainment",
	"Shopping",
	"Travel",
	"Experience",
	DefaultCategory,
}

// Expense is a single recorded cost, in one currency, attributed to a payer
// and split among participants. ParticipantIDs is only meaningful when
// SplitMode is SUBSET; the payer need not be listed in it.
type Expense struct {
	ExpenseID      string          `json:"expenseId"`
	TripID         string          `json:"tripId"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currency"`
	Category       string          `json:"category"`
	PayerID        string          `json:"payerId"` // Member id of who paid
	SplitMode      SplitMode       `json:"splitMode"`
	ParticipantIDs []string        `json:"participantIds"`
	CreatedAt      time.Time       `json:"createdAt"`
}
