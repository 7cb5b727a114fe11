package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type ShiftServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockShiftRepository
	service    portssvc.ShiftSvcFacade
	terminalID string
	cashierID  string
}

func (suite *ShiftServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockShiftRepository)
	suite.service = services.NewShiftService(suite.mockRepo, "biz-1", testPrecision)
	suite.terminalID = "term-1"
	suite.cashierID = uuid.NewString()
}

func (suite *ShiftServiceTestSuite) shiftWithLedger() *domain.ShiftSession {
	txnID := uuid.NewString()
	return &domain.ShiftSession{
		ShiftID:      uuid.NewString(),
		BusinessID:   "biz-1",
		TerminalID:   suite.terminalID,
		CashierID:    suite.cashierID,
		Status:       domain.ShiftOpen,
		OpeningFloat: dec("100.00"),
		Movements: []domain.CashMovement{
			{MovementID: uuid.NewString(), Kind: domain.MovementSale, Amount: dec("22.00"), TransactionID: &txnID},
			{MovementID: uuid.NewString(), Kind: domain.MovementPaidOut, Amount: dec("-5.00"), Notes: "courier tip"},
		},
		OpenedAt: time.Now().UTC().Add(-8 * time.Hour),
	}
}

// --- Test Cases ---

func (suite *ShiftServiceTestSuite) TestOpenShift_Success() {
	ctx := context.Background()
	req := dto.OpenShiftRequest{TerminalID: suite.terminalID, OpeningFloat: dec("100.005")}

	var saved domain.ShiftSession
	suite.mockRepo.On("SaveShift", ctx, mock.AnythingOfType("domain.ShiftSession")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ShiftSession) }).
		Return(nil).Once()

	shift, err := suite.service.OpenShift(ctx, suite.cashierID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftOpen, shift.Status)
	suite.Equal(suite.terminalID, shift.TerminalID)
	suite.Equal(suite.cashierID, shift.CashierID)
	// The declared float is rounded to currency precision before persisting.
	suite.True(saved.OpeningFloat.Equal(dec("100.01")), "float %s", saved.OpeningFloat)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestOpenShift_NegativeFloat() {
	ctx := context.Background()
	req := dto.OpenShiftRequest{TerminalID: suite.terminalID, OpeningFloat: dec("-1.00")}

	_, err := suite.service.OpenShift(ctx, suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveShift", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestOpenShift_TerminalAlreadyHasOpenShift() {
	ctx := context.Background()
	req := dto.OpenShiftRequest{TerminalID: suite.terminalID, OpeningFloat: dec("50.00")}

	suite.mockRepo.On("SaveShift", ctx, mock.AnythingOfType("domain.ShiftSession")).Return(apperrors.ErrShiftAlreadyOpen).Once()

	_, err := suite.service.OpenShift(ctx, suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrShiftAlreadyOpen)
}

func (suite *ShiftServiceTestSuite) TestRecordCashMovement_PaidInKeepsSign() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	req := dto.RecordMovementRequest{Kind: "PAID_IN", Amount: dec("15.00"), Notes: "change run"}

	var appended domain.CashMovement
	suite.mockRepo.On("AppendMovement", ctx, mock.AnythingOfType("domain.CashMovement")).
		Run(func(args mock.Arguments) { appended = args.Get(1).(domain.CashMovement) }).
		Return(nil).Once()

	movement, err := suite.service.RecordCashMovement(ctx, shiftID, suite.cashierID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.MovementPaidIn, movement.Kind)
	suite.True(movement.Amount.Equal(dec("15.00")))
	suite.True(appended.Amount.Equal(dec("15.00")))
	suite.Equal(shiftID, appended.ShiftID)
	suite.Equal("change run", appended.Notes)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestRecordCashMovement_PaidOutStoredNegated() {
	ctx := context.Background()
	shiftID := uuid.NewString()
	req := dto.RecordMovementRequest{Kind: "PAID_OUT", Amount: dec("5.00")}

	var appended domain.CashMovement
	suite.mockRepo.On("AppendMovement", ctx, mock.AnythingOfType("domain.CashMovement")).
		Run(func(args mock.Arguments) { appended = args.Get(1).(domain.CashMovement) }).
		Return(nil).Once()

	movement, err := suite.service.RecordCashMovement(ctx, shiftID, suite.cashierID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.MovementPaidOut, movement.Kind)
	suite.True(appended.Amount.Equal(dec("-5.00")), "amount %s", appended.Amount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestRecordCashMovement_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordMovementRequest{Kind: "PAID_IN", Amount: dec("0")}

	_, err := suite.service.RecordCashMovement(ctx, uuid.NewString(), suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendMovement", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestRecordCashMovement_SettlementKindsRejected() {
	ctx := context.Background()

	for _, kind := range []string{"SALE", "REFUND"} {
		req := dto.RecordMovementRequest{Kind: kind, Amount: dec("22.00")}

		_, err := suite.service.RecordCashMovement(ctx, uuid.NewString(), suite.cashierID, req)

		suite.Require().Error(err, "kind %s", kind)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendMovement", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestRecordCashMovement_ShiftClosed() {
	ctx := context.Background()
	req := dto.RecordMovementRequest{Kind: "PAID_IN", Amount: dec("10.00")}

	suite.mockRepo.On("AppendMovement", ctx, mock.AnythingOfType("domain.CashMovement")).Return(apperrors.ErrShiftClosed).Once()

	_, err := suite.service.RecordCashMovement(ctx, uuid.NewString(), suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrShiftClosed)
}

func (suite *ShiftServiceTestSuite) TestCloseShift_Reconciliation() {
	ctx := context.Background()
	// Float 100.00, sale +22.00, paid-out -5.00: expected 117.00.
	// Counting 115.00 leaves the drawer 2.00 short.
	shift := suite.shiftWithLedger()
	req := dto.CloseShiftRequest{CountedCash: dec("115.00")}

	suite.mockRepo.On("FindShiftByID", ctx, shift.ShiftID).Return(shift, nil).Once()

	var counted, expected, variance decimal.Decimal
	suite.mockRepo.On("CloseShift", ctx, shift.ShiftID, mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			counted = args.Get(2).(decimal.Decimal)
			expected = args.Get(3).(decimal.Decimal)
			variance = args.Get(4).(decimal.Decimal)
		}).
		Return(nil).Once()

	closed, err := suite.service.CloseShift(ctx, shift.ShiftID, suite.cashierID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftClosed, closed.Status)
	suite.True(expected.Equal(dec("117.00")), "expected %s", expected)
	suite.True(counted.Equal(dec("115.00")))
	suite.True(variance.Equal(dec("-2.00")), "variance %s", variance)
	suite.True(closed.ExpectedCash.Equal(dec("117.00")))
	suite.Require().NotNil(closed.CountedCash)
	suite.True(closed.CountedCash.Equal(dec("115.00")))
	suite.Require().NotNil(closed.Variance)
	suite.True(closed.Variance.Equal(dec("-2.00")))
	suite.Require().NotNil(closed.ClosedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestCloseShift_AlreadyClosed() {
	ctx := context.Background()
	shift := suite.shiftWithLedger()
	shift.Status = domain.ShiftClosed
	req := dto.CloseShiftRequest{CountedCash: dec("117.00")}

	suite.mockRepo.On("FindShiftByID", ctx, shift.ShiftID).Return(shift, nil).Once()

	_, err := suite.service.CloseShift(ctx, shift.ShiftID, suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrShiftClosed)
	suite.mockRepo.AssertNotCalled(suite.T(), "CloseShift", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestCloseShift_NegativeCountedCash() {
	ctx := context.Background()
	req := dto.CloseShiftRequest{CountedCash: dec("-10.00")}

	_, err := suite.service.CloseShift(ctx, uuid.NewString(), suite.cashierID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindShiftByID", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestGetOpenShift_NoneOpen() {
	ctx := context.Background()

	suite.mockRepo.On("FindOpenShiftByTerminal", ctx, suite.terminalID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetOpenShift(ctx, suite.terminalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---
func TestShiftService(t *testing.T) {
	suite.Run(t, new(ShiftServiceTestSuite))
}
