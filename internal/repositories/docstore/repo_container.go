package docstore

import (
	portsrepo "github.com/triptab/tripledger/internal/core/ports/repositories"
)

// Collection names in the external document store.
const (
	collectionTrips       = "trips"
	collectionMembers     = "trip_members"
	collectionExpenses    = "expenses"
	collectionObligations = "payouts"
)

// NewRepositoryProvider wires every typed repository over a single Store.
func NewRepositoryProvider(store portsrepo.Store) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TripRepo:       NewTripRepository(store),
		MemberRepo:     NewMemberRepository(store),
		ExpenseRepo:    NewExpenseRepository(store),
		ObligationRepo: NewObligationRepository(store),
	}
}
