package dto

import "github.com/shopspring/decimal"

// MemberBalance is one member's position within a trip, converted to the
// requested display currency at read time.
type MemberBalance struct {
	MemberID   string          `json:"memberId"`
	IdentityID string          `json:"identityId"`
	Owes       decimal.Decimal `json:"owes"`    // unsettled debt this member owes others
	OwedTo     decimal.Decimal `json:"owedTo"`  // unsettled debt others owe this member
	Net        decimal.Decimal `json:"net"`     // OwedTo - Owes
	NetDisplay string          `json:"netDisplay"`
}

// TripSummaryResponse aggregates a trip's ledger into a single display
// currency. Stored amounts are never mutated by this view.
type TripSummaryResponse struct {
	TripID            string          `json:"tripId"`
	DisplayCurrency   string          `json:"displayCurrency"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	TotalSpentDisplay string          `json:"totalSpentDisplay"`
	ExpenseCount      int             `json:"expenseCount"`
	UnsettledCount    int             `json:"unsettledCount"`
	Balances          []MemberBalance `json:"balances"`
}
