package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the persisted document shape for the "expenses" collection.
type Expense struct {
	TripID         string          `json:"tripId"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Category       string          `json:"category"`
	PayerID        string          `json:"payerId"`
	SplitMode      string          `json:"splitMode"`
	ParticipantIDs []string        `json:"participantIds"`
	CreatedAt      time.Time       `json:"createdAt"`
}
