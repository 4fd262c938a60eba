package mapping

import (
	"github.com/triptab/tripledger/internal/core/domain"
	"github.com/triptab/tripledger/internal/models"
)

// ToModelExpense converts a domain Expense to its persisted document shape.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		TripID:         d.TripID,
		Name:           d.Name,
		Amount:         d.Amount,
		Currency:       d.CurrencyCode,
		Category:       d.Category,
		PayerID:        d.PayerID,
		SplitMode:      string(d.SplitMode),
		ParticipantIDs: d.ParticipantIDs,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainExpense converts a persisted expense document back to the domain type.
func ToDomainExpense(recordID string, m models.Expense) domain.Expense {
	category := m.Category
	if category == "" {
		category = domain.DefaultCategory
	}
	return domain.Expense{
		ExpenseID:      recordID,
		TripID:         m.TripID,
		Name:           m.Name,
		Amount:         m.Amount,
		CurrencyCode:   m.Currency,
		Category:       category,
		PayerID:        m.PayerID,
		SplitMode:      domain.SplitMode(m.SplitMode),
		ParticipantIDs: m.ParticipantIDs,
		CreatedAt:      m.CreatedAt,
	}
}
