package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/triptab/tripledger/internal/apperrors"
	"github.com/triptab/tripledger/internal/core/domain"
	portssvc "github.com/triptab/tripledger/internal/core/ports/services"
	"github.com/triptab/tripledger/internal/core/services"
	"github.com/triptab/tripledger/internal/dto"
	"github.com/triptab/tripledger/internal/handlers"
	"github.com/triptab/tripledger/pkg/config"
)

// --- Mock TripService ---
type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) CreateTrip(ctx context.Context, req dto.CreateTripRequest, organizerID string) (*domain.Trip, error) {
	args := m.Called(ctx, req, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripService) GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripService) ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trip), args.Error(1)
}

var _ portssvc.TripSvcFacade = (*MockTripService)(nil)

// --- Mock MembershipService ---
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) JoinTrip(ctx context.Context, tripID, identityID string) (*domain.Member, bool, error) {
	args := m.Called(ctx, tripID, identityID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Member), args.Bool(1), args.Error(2)
}

func (m *MockMembershipService) ListMembers(ctx context.Context, tripID string) ([]domain.Member, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

var _ portssvc.MembershipSvcFacade = (*MockMembershipService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordExpense(ctx context.Context, tripID string, req dto.CreateExpenseRequest) (*domain.Expense, []domain.Obligation, error) {
	args := m.Called(ctx, tripID, req)
	var expense *domain.Expense
	if args.Get(0) != nil {
		expense = args.Get(0).(*domain.Expense)
	}
	var obligations []domain.Obligation
	if args.Get(1) != nil {
		obligations = args.Get(1).([]domain.Obligation)
	}
	return expense, obligations, args.Error(2)
}

func (m *MockLedgerService) CompleteExpense(ctx context.Context, expenseID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockLedgerService) SettleObligation(ctx context.Context, obligationID string) error {
	args := m.Called(ctx, obligationID)
	return args.Error(0)
}

func (m *MockLedgerService) ListExpenses(ctx context.Context, tripID string) ([]domain.Expense, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockLedgerService) ListObligations(ctx context.Context, tripID string, settled *bool) ([]domain.Obligation, error) {
	args := m.Called(ctx, tripID, settled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockLedgerService) GetTripSummary(ctx context.Context, tripID, displayCurrency string) (*dto.TripSummaryResponse, error) {
	args := m.Called(ctx, tripID, displayCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TripSummaryResponse), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type TripHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockTripSvc       *MockTripService
	mockMembershipSvc *MockMembershipService
	mockLedgerSvc     *MockLedgerService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TripHandlerTestSuite) generateTestToken(identityID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "tripledger-test",
		Subject:   identityID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TripHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTripSvc = new(MockTripService)
	suite.mockMembershipSvc = new(MockMembershipService)
	suite.mockLedgerSvc = new(MockLedgerService)

	currencySvc, err := services.NewCurrencyService(domain.DefaultCurrencies(), domain.DefaultRates(), "USD")
	suite.Require().NoError(err)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	container := &portssvc.ServiceContainer{
		Currency:   currencySvc,
		Trip:       suite.mockTripSvc,
		Membership: suite.mockMembershipSvc,
		Ledger:     suite.mockLedgerSvc,
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *TripHandlerTestSuite) doRequest(method, url, identityID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if identityID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(identityID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TripHandlerTestSuite) TestCreateTrip_Success() {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	reqBody := dto.CreateTripRequest{Name: "Tokyo 2026", Country: "Japan", StartDate: start, EndDate: start.AddDate(0, 0, 7)}
	trip := &domain.Trip{TripID: "trip-1", Name: "Tokyo 2026", OrganizerID: "identity-1"}

	suite.mockTripSvc.On("CreateTrip", mock.Anything, mock.AnythingOfType("dto.CreateTripRequest"), "identity-1").Return(trip, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/trips", "identity-1", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TripResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("trip-1", resp.TripID)
	suite.mockTripSvc.AssertExpectations(suite.T())
}

func (suite *TripHandlerTestSuite) TestCreateTrip_Unauthorized() {
	w := suite.doRequest(http.MethodPost, "/api/v1/trips", "", dto.CreateTripRequest{})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTripSvc.AssertNotCalled(suite.T(), "CreateTrip", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TripHandlerTestSuite) TestCreateTrip_EndBeforeStart() {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	reqBody := dto.CreateTripRequest{Name: "Backwards", Country: "Japan", StartDate: start, EndDate: start.AddDate(0, 0, -1)}

	w := suite.doRequest(http.MethodPost, "/api/v1/trips", "identity-1", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTripSvc.AssertNotCalled(suite.T(), "CreateTrip", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TripHandlerTestSuite) TestJoinTrip_NewMember() {
	member := &domain.Member{MemberID: "m-1", TripID: "trip-1", IdentityID: "identity-2", JoinedAt: time.Now().UTC()}
	suite.mockMembershipSvc.On("JoinTrip", mock.Anything, "trip-1", "identity-2").Return(member, true, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/trips/trip-1/members", "identity-2", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JoinTripResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Created)
	suite.Equal("m-1", resp.MemberID)
}

func (suite *TripHandlerTestSuite) TestJoinTrip_RepeatJoin() {
	member := &domain.Member{MemberID: "m-1", TripID: "trip-1", IdentityID: "identity-2"}
	suite.mockMembershipSvc.On("JoinTrip", mock.Anything, "trip-1", "identity-2").Return(member, false, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/trips/trip-1/members", "identity-2", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JoinTripResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Created)
	suite.Equal("m-1", resp.MemberID)
}

func (suite *TripHandlerTestSuite) TestJoinTrip_TripNotFound() {
	suite.mockMembershipSvc.On("JoinTrip", mock.Anything, "nope", "identity-2").Return(nil, false, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/trips/nope/members", "identity-2", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TripHandlerTestSuite) TestRecordExpense_PartialWrite() {
	reqBody := gin.H{
		"name":      "Dinner",
		"amount":    "90.00",
		"currency":  "USD",
		"payerId":   "m-1",
		"splitMode": "ALL",
	}
	partial := apperrors.NewPartialWriteError("exp-1", 1, 2, apperrors.ErrStoreUnavailable)
	suite.mockLedgerSvc.On("RecordExpense", mock.Anything, "trip-1", mock.AnythingOfType("dto.CreateExpenseRequest")).Return(nil, nil, partial).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/trips/trip-1/expenses", "identity-1", reqBody)

	suite.Equal(http.StatusBadGateway, w.Code)
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	// The expense id must reach the caller so completion can be re-driven.
	suite.Equal("exp-1", resp["expenseId"])
}

func (suite *TripHandlerTestSuite) TestRecordExpense_SubsetWithoutParticipants() {
	reqBody := gin.H{
		"name":      "Dinner",
		"amount":    "90.00",
		"currency":  "USD",
		"payerId":   "m-1",
		"splitMode": "SUBSET",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/trips/trip-1/expenses", "identity-1", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "RecordExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TripHandlerTestSuite) TestSettleObligation_NotFound() {
	suite.mockLedgerSvc.On("SettleObligation", mock.Anything, "ghost").Return(apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/obligations/ghost/settle", "identity-1", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TripHandlerTestSuite) TestGetTripSummary() {
	summary := &dto.TripSummaryResponse{TripID: "trip-1", DisplayCurrency: "EUR", ExpenseCount: 2}
	suite.mockLedgerSvc.On("GetTripSummary", mock.Anything, "trip-1", "EUR").Return(summary, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/trips/trip-1/summary?currency=EUR", "identity-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TripSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("EUR", resp.DisplayCurrency)
	suite.Equal(2, resp.ExpenseCount)
}

func (suite *TripHandlerTestSuite) TestConvertCurrency() {
	w := suite.doRequest(http.MethodGet, "/api/v1/currencies/convert?amount=10&from=USD&to=USD", "identity-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConvertResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.To)
}

func (suite *TripHandlerTestSuite) TestConvertCurrency_Unknown() {
	w := suite.doRequest(http.MethodGet, "/api/v1/currencies/convert?amount=10&from=XXX&to=USD", "identity-1", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TripHandlerTestSuite) TestHealth() {
	w := suite.doRequest(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
}

// --- Run Test Suite ---
func TestTripHandler(t *testing.T) {
	suite.Run(t, new(TripHandlerTestSuite))
}
