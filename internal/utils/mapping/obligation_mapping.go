package mapping

import (
	"github.com/triptab/tripledger/internal/core/domain"
	"github.com/triptab/tripledger/internal/models"
)

// ToModelObligation converts a domain Obligation to its persisted document shape.
func ToModelObligation(d domain.Obligation) models.Obligation {
	return models.Obligation{
		TripID:    d.TripID,
		ExpenseID: d.ExpenseID,
		OwedBy:    d.OwedBy,
		OwedTo:    d.OwedTo,
		Amount:    d.Amount,
		Currency:  d.CurrencyCode,
		Settled:   d.Settled,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainObligation converts a persisted payout document back to the domain type.
func ToDomainObligation(recordID string, m models.Obligation) domain.Obligation {
	return domain.Obligation{
		ObligationID: recordID,
		TripID:       m.TripID,
		ExpenseID:    m.ExpenseID,
		OwedBy:       m.OwedBy,
		OwedTo:       m.OwedTo,
		Amount:       m.Amount,
		CurrencyCode: m.Currency,
		Settled:      m.Settled,
		CreatedAt:    m.CreatedAt,
	}
}
