package services

import (
	"context"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
)

// ShiftReaderSvc defines read operations for shift sessions
type ShiftReaderSvc interface {
	// GetShift retrieves a shift session with its cash movements.
	GetShift(ctx context.Context, shiftID string) (*domain.ShiftSession, error)

	// GetOpenShift retrieves the terminal's open session, if any.
	GetOpenShift(ctx context.Context, terminalID string) (*domain.ShiftSession, error)
}

// ShiftWriterSvc drives the cash-drawer session lifecycle.
type ShiftWriterSvc interface {
	// OpenShift opens a session with the declared opening float. Fails with
	// ErrShiftAlreadyOpen when the terminal already has one open.
	OpenShift(ctx context.Context, cashierID string, req dto.OpenShiftRequest) (*domain.ShiftSession, error)

	// RecordCashMovement appends a manual paid-in/paid-out movement.
	RecordCashMovement(ctx context.Context, shiftID string, cashierID string, req dto.RecordMovementRequest) (*domain.CashMovement, error)

	// CloseShift reconciles and freezes the session: expected cash is the
	// opening float plus the movement sum, variance = counted - expected.
	CloseShift(ctx context.Context, shiftID string, cashierID string, req dto.CloseShiftRequest) (*domain.ShiftSession, error)
}

// ShiftSvcFacade combines all shift service interfaces
type ShiftSvcFacade interface {
	ShiftReaderSvc
	ShiftWriterSvc
}
