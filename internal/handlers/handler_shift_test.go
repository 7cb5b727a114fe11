package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
	"github.com/Sam231221/AuraSwift-sub015/internal/handlers"
	"github.com/Sam231221/AuraSwift-sub015/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ShiftService ---
type MockShiftService struct {
	mock.Mock
}

func (m *MockShiftService) GetShift(ctx context.Context, shiftID string) (*domain.ShiftSession, error) {
	args := m.Called(ctx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSession), args.Error(1)
}

func (m *MockShiftService) GetOpenShift(ctx context.Context, terminalID string) (*domain.ShiftSession, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSession), args.Error(1)
}

func (m *MockShiftService) OpenShift(ctx context.Context, cashierID string, req dto.OpenShiftRequest) (*domain.ShiftSession, error) {
	args := m.Called(ctx, cashierID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSession), args.Error(1)
}

func (m *MockShiftService) RecordCashMovement(ctx context.Context, shiftID string, cashierID string, req dto.RecordMovementRequest) (*domain.CashMovement, error) {
	args := m.Called(ctx, shiftID, cashierID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashMovement), args.Error(1)
}

func (m *MockShiftService) CloseShift(ctx context.Context, shiftID string, cashierID string, req dto.CloseShiftRequest) (*domain.ShiftSession, error) {
	args := m.Called(ctx, shiftID, cashierID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSession), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ShiftSvcFacade = (*MockShiftService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) OpenTransaction(ctx context.Context, cashierID string, req dto.OpenTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, cashierID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) SubmitForPayment(ctx context.Context, transactionID string, cashierID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, cashierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) AddTender(ctx context.Context, transactionID string, cashierID string, req dto.AddTenderRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, cashierID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) FinalizeTransaction(ctx context.Context, transactionID string, cashierID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, cashierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) VoidTransaction(ctx context.Context, transactionID string, cashierID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, cashierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) RefundTransaction(ctx context.Context, transactionID string, cashierID string, req dto.RefundTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, cashierID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock PricingService ---
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) PriceCart(ctx context.Context, req dto.PriceCartRequest, at time.Time) (*domain.ResolvedPricing, []domain.CartLine, error) {
	args := m.Called(ctx, req, at)
	var pricing *domain.ResolvedPricing
	if args.Get(0) != nil {
		pricing = args.Get(0).(*domain.ResolvedPricing)
	}
	var lines []domain.CartLine
	if args.Get(1) != nil {
		lines = args.Get(1).([]domain.CartLine)
	}
	return pricing, lines, args.Error(2)
}

func (m *MockPricingService) PriceLines(ctx context.Context, lines []domain.CartLine, at time.Time) (*domain.ResolvedPricing, error) {
	args := m.Called(ctx, lines, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedPricing), args.Error(1)
}

var _ portssvc.PricingSvcFacade = (*MockPricingService)(nil)

// --- Mock InventoryService ---
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetStockLevels(ctx context.Context, productIDs []string) (map[string]domain.StockLevel, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.StockLevel), args.Error(1)
}

func (m *MockInventoryService) Reserve(ctx context.Context, transactionID string, deltas []domain.StockDelta) error {
	args := m.Called(ctx, transactionID, deltas)
	return args.Error(0)
}

func (m *MockInventoryService) Release(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

var _ portssvc.InventorySvcFacade = (*MockInventoryService)(nil)

// --- Test Suite ---
type ShiftHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockShiftService     *MockShiftService
	mockTxnService       *MockTransactionService
	mockPricingService   *MockPricingService
	mockInventoryService *MockInventoryService
	jwtSecret            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ShiftHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pos-test",
		Subject:   userID,
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

func (suite *ShiftHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockShiftService = new(MockShiftService)
	suite.mockTxnService = new(MockTransactionService)
	suite.mockPricingService = new(MockPricingService)
	suite.mockInventoryService = new(MockInventoryService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // keeps swagger routes out of the test router
	}
	services := &portssvc.ServiceContainer{
		Pricing:     suite.mockPricingService,
		Inventory:   suite.mockInventoryService,
		Transaction: suite.mockTxnService,
		Shift:       suite.mockShiftService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *ShiftHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ShiftHandlerTestSuite) TestCloseShift_Success() {
	shiftID := uuid.NewString()
	cashierID := uuid.NewString()
	counted := decimal.RequireFromString("115.00")
	expected := decimal.RequireFromString("117.00")
	variance := decimal.RequireFromString("-2.00")
	closedAt := time.Now().UTC()

	closedShift := &domain.ShiftSession{
		ShiftID:      shiftID,
		TerminalID:   "term-1",
		CashierID:    cashierID,
		Status:       domain.ShiftClosed,
		OpeningFloat: decimal.RequireFromString("100.00"),
		ExpectedCash: expected,
		CountedCash:  &counted,
		Variance:     &variance,
		OpenedAt:     closedAt.Add(-8 * time.Hour),
		ClosedAt:     &closedAt,
	}

	suite.mockShiftService.On("CloseShift",
		mock.Anything,
		shiftID,
		cashierID,
		mock.MatchedBy(func(req dto.CloseShiftRequest) bool {
			return req.CountedCash.Equal(counted)
		}),
	).Return(closedShift, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/shifts/%s/close", shiftID), cashierID,
		dto.CloseShiftRequest{CountedCash: counted})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ShiftResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(shiftID, resp.ShiftID)
	suite.Equal(string(domain.ShiftClosed), resp.Status)
	suite.True(resp.ExpectedCash.Equal(expected))
	suite.Require().NotNil(resp.Variance)
	suite.True(resp.Variance.Equal(variance))
	suite.mockShiftService.AssertExpectations(suite.T())
}

func (suite *ShiftHandlerTestSuite) TestOpenShift_AlreadyOpenConflict() {
	cashierID := uuid.NewString()
	req := dto.OpenShiftRequest{TerminalID: "term-1", OpeningFloat: decimal.RequireFromString("100.00")}

	suite.mockShiftService.On("OpenShift", mock.Anything, cashierID, mock.AnythingOfType("dto.OpenShiftRequest")).
		Return(nil, apperrors.ErrShiftAlreadyOpen).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/shifts", cashierID, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockShiftService.AssertExpectations(suite.T())
}

func (suite *ShiftHandlerTestSuite) TestGetOpenShift_MissingTerminalID() {
	w := suite.doRequest(http.MethodGet, "/api/v1/shifts/open", uuid.NewString(), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockShiftService.AssertNotCalled(suite.T(), "GetOpenShift", mock.Anything, mock.Anything)
}

func (suite *ShiftHandlerTestSuite) TestRecordMovement_Unauthorized() {
	w := suite.doRequest(http.MethodPost, "/api/v1/shifts/"+uuid.NewString()+"/movements", "",
		dto.RecordMovementRequest{Kind: "PAID_IN", Amount: decimal.RequireFromString("10.00")})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockShiftService.AssertNotCalled(suite.T(), "RecordCashMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShiftHandlerTestSuite) TestGetShift_NotFound() {
	shiftID := uuid.NewString()

	suite.mockShiftService.On("GetShift", mock.Anything, shiftID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/shifts/"+shiftID, uuid.NewString(), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockShiftService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestShiftHandler(t *testing.T) {
	suite.Run(t, new(ShiftHandlerTestSuite))
}
