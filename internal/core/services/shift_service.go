package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
	"github.com/Sam231221/AuraSwift-sub015/internal/middleware"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/money"
	"github.com/shopspring/decimal"
)

// shiftService manages cash-drawer sessions. A terminal holds at most one
// open session at a time; the repository enforces that with a partial unique
// index, so racing opens resolve to one winner.
type shiftService struct {
	shiftRepo  portsrepo.ShiftRepositoryFacade
	businessID string
	precision  int32
}

// NewShiftService creates a new ShiftService.
func NewShiftService(shiftRepo portsrepo.ShiftRepositoryFacade, businessID string, precision int32) portssvc.ShiftSvcFacade {
	return &shiftService{
		shiftRepo:  shiftRepo,
		businessID: businessID,
		precision:  precision,
	}
}

// Ensure shiftService implements the portssvc.ShiftSvcFacade interface
var _ portssvc.ShiftSvcFacade = (*shiftService)(nil)

// OpenShift opens a session with the declared opening float.
// Implements portssvc.ShiftSvcFacade.
func (s *shiftService) OpenShift(ctx context.Context, cashierID string, req dto.OpenShiftRequest) (*domain.ShiftSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OpeningFloat.IsNegative() {
		return nil, fmt.Errorf("%w: opening float cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	shift := domain.ShiftSession{
		ShiftID:      uuid.NewString(),
		BusinessID:   s.businessID,
		TerminalID:   req.TerminalID,
		CashierID:    cashierID,
		Status:       domain.ShiftOpen,
		OpeningFloat: money.Round(req.OpeningFloat, s.precision),
		OpenedAt:     now,
	}

	if err := s.shiftRepo.SaveShift(ctx, shift); err != nil {
		logger.Error("Failed to open shift", "terminal_id", req.TerminalID, "error", err)
		return nil, err
	}

	logger.Info("Shift opened", "shift_id", shift.ShiftID, "terminal_id", shift.TerminalID, "opening_float", shift.OpeningFloat.String())
	return &shift, nil
}

// RecordCashMovement appends a manual paid-in or paid-out movement.
// Implements portssvc.ShiftSvcFacade.
func (s *shiftService) RecordCashMovement(ctx context.Context, shiftID string, cashierID string, req dto.RecordMovementRequest) (*domain.CashMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: movement amount must be positive", apperrors.ErrValidation)
	}

	kind := domain.MovementKind(req.Kind)
	amount := money.Round(req.Amount, s.precision)
	// Paid-outs are stored negated so the movement sum is a plain total.
	// Sale and refund movements carry a transaction link and are appended by
	// settlement, never manually.
	switch kind {
	case domain.MovementPaidIn:
	case domain.MovementPaidOut:
		amount = amount.Neg()
	default:
		return nil, fmt.Errorf("%w: movement kind %s cannot be recorded manually", apperrors.ErrValidation, kind)
	}

	movement := domain.CashMovement{
		MovementID: uuid.NewString(),
		ShiftID:    shiftID,
		Kind:       kind,
		Amount:     amount,
		Notes:      req.Notes,
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  cashierID,
	}

	if err := s.shiftRepo.AppendMovement(ctx, movement); err != nil {
		logger.Error("Failed to record cash movement", "shift_id", shiftID, "error", err)
		return nil, err
	}

	logger.Info("Cash movement recorded", "shift_id", shiftID, "kind", kind, "amount", amount.String())
	return &movement, nil
}

// CloseShift reconciles the drawer and freezes the session.
// Implements portssvc.ShiftSvcFacade.
func (s *shiftService) CloseShift(ctx context.Context, shiftID string, cashierID string, req dto.CloseShiftRequest) (*domain.ShiftSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CountedCash.IsNegative() {
		return nil, fmt.Errorf("%w: counted cash cannot be negative", apperrors.ErrValidation)
	}

	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != domain.ShiftOpen {
		return nil, fmt.Errorf("%w: shift %s is not open", apperrors.ErrShiftClosed, shiftID)
	}

	now := time.Now().UTC()
	counted := money.Round(req.CountedCash, s.precision)
	expected := money.Round(shift.ComputeExpectedCash(), s.precision)
	variance := counted.Sub(expected)

	if err := s.shiftRepo.CloseShift(ctx, shiftID, counted, expected, variance, now); err != nil {
		logger.Error("Failed to close shift", "shift_id", shiftID, "error", err)
		return nil, err
	}

	shift.Status = domain.ShiftClosed
	shift.CountedCash = &counted
	shift.ExpectedCash = expected
	shift.Variance = &variance
	shift.ClosedAt = &now

	logger.Info("Shift closed",
		"shift_id", shiftID,
		"expected_cash", expected.String(),
		"counted_cash", counted.String(),
		"variance", variance.String(),
	)
	return shift, nil
}

// GetShift retrieves a shift session with its cash movements.
// Implements portssvc.ShiftSvcFacade.
func (s *shiftService) GetShift(ctx context.Context, shiftID string) (*domain.ShiftSession, error) {
	return s.shiftRepo.FindShiftByID(ctx, shiftID)
}

// GetOpenShift retrieves the terminal's open session, if any.
// Implements portssvc.ShiftSvcFacade.
func (s *shiftService) GetOpenShift(ctx context.Context, terminalID string) (*domain.ShiftSession, error) {
	return s.shiftRepo.FindOpenShiftByTerminal(ctx, terminalID)
}
