package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/triptab/tripledger/internal/apperrors"
	"github.com/triptab/tripledger/internal/core/domain"
	"github.com/triptab/tripledger/internal/core/services"
	"github.com/triptab/tripledger/internal/dto"
)

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByTrip(ctx context.Context, tripID string) ([]domain.Expense, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

// --- Mock ObligationRepository ---
type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) ListObligationsByExpense(ctx context.Context, expenseID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) ListObligationsByTrip(ctx context.Context, tripID string, settled *bool) ([]domain.Obligation, error) {
	args := m.Called(ctx, tripID, settled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockTripRepo       *MockTripRepository
	mockMemberRepo     *MockMemberRepository
	mockExpenseRepo    *MockExpenseRepository
	mockObligationRepo *MockObligationRepository
	service            *services.LedgerService
	trip               *domain.Trip
	members            []domain.Member
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTripRepo = new(MockTripRepository)
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockObligationRepo = new(MockObligationRepository)

	currencySvc, err := services.NewCurrencyService(
		[]domain.Currency{
			{Code: "USD", Name: "US Dollar", Symbol: "$", MinorUnits: 2},
			{Code: "EUR", Name: "Euro", Symbol: "€", MinorUnits: 2},
		},
		domain.RateTable{
			"USD": decimal.RequireFromString("1"),
			"EUR": decimal.RequireFromString("0.92"),
		},
		"USD",
	)
	suite.Require().NoError(err)

	suite.service = services.NewLedgerService(
		suite.mockTripRepo,
		suite.mockMemberRepo,
		suite.mockExpenseRepo,
		suite.mockObligationRepo,
		currencySvc,
		services.NewSplitCalculator(),
	)

	suite.trip = &domain.Trip{TripID: "trip-1", Name: "Lisbon 2026"}
	suite.members = []domain.Member{
		{MemberID: "m-alice", TripID: "trip-1", IdentityID: "identity-alice"},
		{MemberID: "m-bob", TripID: "trip-1", IdentityID: "identity-bob"},
		{MemberID: "m-carol", TripID: "trip-1", IdentityID: "identity-carol"},
	}
}

func (suite *LedgerServiceTestSuite) expenseRequest() dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		Name:      "Dinner",
		Amount:    decimal.RequireFromString("90.00"),
		Currency:  "USD",
		PayerID:   "m-alice",
		SplitMode: "ALL",
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestRecordExpense_Success() {
	ctx := context.Background()

	suite.mockTripRepo.On("FindTripByID", ctx, "trip-1").Return(suite.trip, nil).Once()
	suite.mockMemberRepo.On("ListMembersByTrip", ctx, "trip-1").Return(suite.members, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.TripID == "trip-1" && e.Category == domain.DefaultCategory
	})).Return(nil).Once()
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(nil).Twice()

	expense, obligations, err := suite.service.RecordExpense(ctx, "trip-1", suite.expenseRequest())

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.Require().Len(obligations, 2)

	total := decimal.Zero
	for _, o := range obligations {
		suite.Equal("m-alice", o.OwedTo)
		suite.Equal(expense.ExpenseID, o.ExpenseID)
		suite.Equal(services.ObligationIDFor(expense.ExpenseID, o.OwedBy), o.ObligationID)
		suite.False(o.Settled)
		total = total.Add(o.Amount)
	}
	suite.True(decimal.RequireFromString("90.00").Equal(total), "obligations sum to %s", total)

	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_TripNotFound() {
	ctx := context.Background()

	suite.mockTripRepo.On("FindTripByID", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.RecordExpense(ctx, "nope", suite.expenseRequest())

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_UnknownCurrency() {
	ctx := context.Background()
	req := suite.expenseRequest()
	req.Currency = "XXX"

	suite.mockTripRepo.On("FindTripByID", ctx, "trip-1").Return(suite.trip, nil).Once()

	_, _, err := suite.service.RecordExpense(ctx, "trip-1", req)

	suite.ErrorIs(err, apperrors.ErrUnknownCurrency)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_PayerNotMember_NothingPersisted() {
	ctx := context.Background()
	req := suite.expenseRequest()
	req.PayerID = "m-stranger"

	suite.mockTripRepo.On("FindTripByID", ctx, "trip-1").Return(suite.trip, nil).Once()
	suite.mockMemberRepo.On("ListMembersByTrip", ctx, "trip-1").Return(suite.members, nil).Once()

	_, _, err := suite.service.RecordExpense(ctx, "trip-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrPayerNotMember)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "SaveObligation", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_ExcessPrecision_NothingPersisted() {
	ctx := context.Background()
	req := suite.expenseRequest()
	req.Amount = decimal.RequireFromString("10.001")

	suite.mockTripRepo.On("FindTripByID", ctx, "trip-1").Return(suite.trip, nil).Once()
	suite.mockMemberRepo.On("ListMembersByTrip", ctx, "trip-1").Return(suite.members, nil).Once()

	_, _, err := suite.service.RecordExpense(ctx, "trip-1", req)

	suite.ErrorIs(err, services.ErrAmountPrecision)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_Absorbed() {
	ctx := context.Background()
	solo := []domain.Member{{MemberID: "m-alice", TripID: "trip-1"}}

	suite.mockTripRepo.On("FindTripByID", ctx, "trip-1").Return(suite.trip, nil).Once()
	suite.mockMemberRepo.On("ListMembersByTrip", ctx, "trip-1").Return(solo, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	expense, obligations, err := suite.service.RecordExpense(ctx, "trip-1", suite.expenseRequest())

	suite.Require().NoError(err)
	suite.NotNil(expense)
	suite.Empty(obligations)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "SaveObligation", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_PartialWrite() {
	ctx := context.Background()

	suite.mockTripRepo.On("FindTripByID", ctx, "trip-1").Return(suite.trip, nil).Once()
	suite.mockMemberRepo.On("ListMembersByTrip", ctx, "trip-1").Return(suite.members, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()
	// First obligation lands, the second hits a store failure.
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(nil).Once()
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(apperrors.ErrStoreUnavailable).Once()

	_, _, err := suite.service.RecordExpense(ctx, "trip-1", suite.expenseRequest())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPartialWrite)

	var partial *apperrors.PartialWriteError
	suite.Require().ErrorAs(err, &partial)
	suite.NotEmpty(partial.ExpenseID)
	suite.Equal(1, partial.Written)
	suite.Equal(2, partial.Expected)
}

func (suite *LedgerServiceTestSuite) TestCompleteExpense_ReDrive() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID:    "exp-1",
		TripID:       "trip-1",
		Amount:       decimal.RequireFromString("90.00"),
		CurrencyCode: "USD",
		PayerID:      "m-alice",
		SplitMode:    domain.SplitAll,
	}
	full := []domain.Obligation{
		{ObligationID: services.ObligationIDFor("exp-1", "m-bob")},
		{ObligationID: services.ObligationIDFor("exp-1", "m-carol")},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "exp-1").Return(expense, nil).Once()
	suite.mockMemberRepo.On("ListMembersByTrip", ctx, "trip-1").Return(suite.members, nil).Once()
	// One share already exists from the interrupted batch, the other is new.
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(apperrors.ErrDuplicate).Once()
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(nil).Once()
	suite.mockObligationRepo.On("ListObligationsByExpense", ctx, "exp-1").Return(full, nil).Once()

	obligations, err := suite.service.CompleteExpense(ctx, "exp-1")

	suite.Require().NoError(err)
	suite.Equal(full, obligations)
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCompleteExpense_AlreadyComplete() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID:    "exp-1",
		TripID:       "trip-1",
		Amount:       decimal.RequireFromString("90.00"),
		CurrencyCode: "USD",
		PayerID:      "m-alice",
		SplitMode:    domain.SplitAll,
	}
	full := []domain.Obligation{
		{ObligationID: services.ObligationIDFor("exp-1", "m-bob")},
		{ObligationID: services.ObligationIDFor("exp-1", "m-carol")},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "exp-1").Return(expense, nil).Once()
	suite.mockMemberRepo.On("ListMembersByTrip", ctx, "trip-1").Return(suite.members, nil).Once()
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(apperrors.ErrDuplicate).Twice()
	suite.mockObligationRepo.On("ListObligationsByExpense", ctx, "exp-1").Return(full, nil).Once()

	obligations, err := suite.service.CompleteExpense(ctx, "exp-1")

	suite.Require().NoError(err)
	suite.Len(obligations, 2)
}

func (suite *LedgerServiceTestSuite) TestCompleteExpense_NotFound() {
	ctx := context.Background()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CompleteExpense(ctx, "nope")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestSettleObligation_Success() {
	ctx := context.Background()
	obligation := &domain.Obligation{ObligationID: "ob-1", Settled: false}

	suite.mockObligationRepo.On("FindObligationByID", ctx, "ob-1").Return(obligation, nil).Once()
	suite.mockObligationRepo.On("UpdateObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.ObligationID == "ob-1" && o.Settled
	})).Return(nil).Once()

	err := suite.service.SettleObligation(ctx, "ob-1")

	suite.Require().NoError(err)
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSettleObligation_AlreadySettled_NoOp() {
	ctx := context.Background()
	obligation := &domain.Obligation{ObligationID: "ob-1", Settled: true}

	suite.mockObligationRepo.On("FindObligationByID", ctx, "ob-1").Return(obligation, nil).Once()

	err := suite.service.SettleObligation(ctx, "ob-1")

	suite.Require().NoError(err)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "UpdateObligation", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSettleObligation_NotFound() {
	ctx := context.Background()

	suite.mockObligationRepo.On("FindObligationByID", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.SettleObligation(ctx, "nope")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestListObligations_SettledFilter() {
	ctx := context.Background()
	settled := true
	obligations := []domain.Obligation{{ObligationID: "ob-1", Settled: true}}

	suite.mockTripRepo.On("FindTripByID", ctx, "trip-1").Return(suite.trip, nil).Once()
	suite.mockObligationRepo.On("ListObligationsByTrip", ctx, "trip-1", &settled).Return(obligations, nil).Once()

	got, err := suite.service.ListObligations(ctx, "trip-1", &settled)

	suite.Require().NoError(err)
	suite.Equal(obligations, got)
}

func (suite *LedgerServiceTestSuite) TestGetTripSummary() {
	ctx := context.Background()
	expenses := []domain.Expense{
		{ExpenseID: "exp-1", TripID: "trip-1", Amount: decimal.RequireFromString("92.00"), CurrencyCode: "EUR", PayerID: "m-alice"},
	}
	obligations := []domain.Obligation{
		{ObligationID: "ob-1", ExpenseID: "exp-1", OwedBy: "m-bob", OwedTo: "m-alice", Amount: decimal.RequireFromString("46.00"), CurrencyCode: "EUR", Settled: false},
		{ObligationID: "ob-2", ExpenseID: "exp-1", OwedBy: "m-carol", OwedTo: "m-alice", Amount: decimal.RequireFromString("46.00"), CurrencyCode: "EUR", Settled: true},
	}

	suite.mockTripRepo.On("FindTripByID", ctx, "trip-1").Return(suite.trip, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByTrip", ctx, "trip-1").Return(expenses, nil).Once()
	suite.mockObligationRepo.On("ListObligationsByTrip", ctx, "trip-1", (*bool)(nil)).Return(obligations, nil).Once()
	suite.mockMemberRepo.On("ListMembersByTrip", ctx, "trip-1").Return(suite.members, nil).Once()

	summary, err := suite.service.GetTripSummary(ctx, "trip-1", "USD")

	suite.Require().NoError(err)
	suite.Equal("trip-1", summary.TripID)
	suite.Equal("USD", summary.DisplayCurrency)
	suite.Equal(1, summary.ExpenseCount)
	// Only ob-1 is outstanding; ob-2 is settled.
	suite.Equal(1, summary.UnsettledCount)
	// 92 EUR / 0.92 = 100 USD total spend.
	suite.True(decimal.RequireFromString("100.00").Equal(summary.TotalSpent), "got %s", summary.TotalSpent)
	suite.Equal("$100.00", summary.TotalSpentDisplay)

	suite.Require().Len(summary.Balances, 3)
	byMember := make(map[string]dto.MemberBalance, len(summary.Balances))
	for _, b := range summary.Balances {
		byMember[b.MemberID] = b
	}
	// Bob still owes 46 EUR = 50 USD; alice is owed the same.
	assert.True(suite.T(), decimal.RequireFromString("50.00").Equal(byMember["m-bob"].Owes))
	assert.True(suite.T(), decimal.RequireFromString("-50.00").Equal(byMember["m-bob"].Net))
	assert.Equal(suite.T(), "$-50.00", byMember["m-bob"].NetDisplay)
	assert.True(suite.T(), decimal.RequireFromString("50.00").Equal(byMember["m-alice"].OwedTo))
	assert.True(suite.T(), decimal.RequireFromString("50.00").Equal(byMember["m-alice"].Net))
	// Carol's debt is settled, nothing outstanding either way.
	assert.True(suite.T(), byMember["m-carol"].Net.IsZero())
}

func (suite *LedgerServiceTestSuite) TestGetTripSummary_DefaultsToBaseCurrency() {
	ctx := context.Background()

	suite.mockTripRepo.On("FindTripByID", ctx, "trip-1").Return(suite.trip, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByTrip", ctx, "trip-1").Return([]domain.Expense{}, nil).Once()
	suite.mockObligationRepo.On("ListObligationsByTrip", ctx, "trip-1", (*bool)(nil)).Return([]domain.Obligation{}, nil).Once()
	suite.mockMemberRepo.On("ListMembersByTrip", ctx, "trip-1").Return(suite.members, nil).Once()

	summary, err := suite.service.GetTripSummary(ctx, "trip-1", "")

	suite.Require().NoError(err)
	suite.Equal("USD", summary.DisplayCurrency)
}

func (suite *LedgerServiceTestSuite) TestGetTripSummary_UnknownDisplayCurrency() {
	ctx := context.Background()

	suite.mockTripRepo.On("FindTripByID", ctx, "trip-1").Return(suite.trip, nil).Once()

	_, err := suite.service.GetTripSummary(ctx, "trip-1", "XXX")
	suite.ErrorIs(err, apperrors.ErrUnknownCurrency)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
