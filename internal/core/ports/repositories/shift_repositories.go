package repositories

import (
	"context"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ShiftReader defines read operations for shift session data
type ShiftReader interface {
	// FindShiftByID retrieves a shift session with its cash movements.
	FindShiftByID(ctx context.Context, shiftID string) (*domain.ShiftSession, error)

	// FindOpenShiftByTerminal retrieves the terminal's open session, or
	// ErrNotFound when none is open.
	FindOpenShiftByTerminal(ctx context.Context, terminalID string) (*domain.ShiftSession, error)
}

// ShiftWriter defines write operations for shift session data
type ShiftWriter interface {
	// SaveShift persists a newly opened shift session. Fails with
	// ErrShiftAlreadyOpen when the terminal already has an open session.
	SaveShift(ctx context.Context, shift domain.ShiftSession) error

	// AppendMovement appends a cash movement to an open session as an atomic
	// append. Movements carrying a transaction ID are idempotent: a duplicate
	// delivery fails with ErrDuplicate and leaves the ledger unchanged.
	// Fails with ErrShiftClosed when the session is closed.
	AppendMovement(ctx context.Context, movement domain.CashMovement) error

	// CloseShift transitions the session to CLOSED, recording counted cash,
	// the computed expected cash and the variance, and freezes it.
	// Fails with ErrShiftClosed when already closed.
	CloseShift(ctx context.Context, shiftID string, countedCash, expectedCash, variance decimal.Decimal, closedAt time.Time) error

	// AppendMovementInTx performs AppendMovement's work inside an existing DB
	// transaction, so sale and refund cash deltas land atomically with the
	// transaction state change.
	AppendMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.CashMovement) error
}

// ShiftRepositoryFacade combines all shift repository interfaces
type ShiftRepositoryFacade interface {
	ShiftReader
	ShiftWriter
}
