package services

import (
	portsrepo "github.com/triptab/tripledger/internal/core/ports/repositories"
	portssvc "github.com/triptab/tripledger/internal/core/ports/services"
)

// NewServiceContainer wires the repositories and the currency service into
// the full service set. The currency service is built by the caller because
// its tables come from configuration, not from the store.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, currencySvc portssvc.CurrencySvcFacade) *portssvc.ServiceContainer {
	membershipSvc := NewMembershipService(repos.TripRepo, repos.MemberRepo)
	tripSvc := NewTripService(repos.TripRepo, membershipSvc)
	ledgerSvc := NewLedgerService(
		repos.TripRepo,
		repos.MemberRepo,
		repos.ExpenseRepo,
		repos.ObligationRepo,
		currencySvc,
		NewSplitCalculator(),
	)

	return &portssvc.ServiceContainer{
		Currency:   currencySvc,
		Trip:       tripSvc,
		Membership: membershipSvc,
		Ledger:     ledgerSvc,
	}
}
