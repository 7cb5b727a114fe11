package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	"github.com/Sam231221/AuraSwift-sub015/internal/models"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/mapping"
)

// Postgres error codes surfaced as domain errors.
const uniqueViolationCode = "23505"

type PgxShiftRepository struct {
	BaseRepository
}

// newPgxShiftRepository creates a new repository for shift session data.
func newPgxShiftRepository(pool *pgxpool.Pool) portsrepo.ShiftRepositoryFacade {
	return &PgxShiftRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxShiftRepository implements portsrepo.ShiftRepositoryFacade
var _ portsrepo.ShiftRepositoryFacade = (*PgxShiftRepository)(nil)

// SaveShift persists a newly opened shift session. The partial unique index
// on (terminal_id) WHERE status = 'OPEN' makes racing opens resolve to one
// winner; the loser gets ErrShiftAlreadyOpen.
func (r *PgxShiftRepository) SaveShift(ctx context.Context, shift domain.ShiftSession) error {
	m := mapping.ToModelShiftSession(shift)
	query := `
		INSERT INTO shift_sessions (shift_id, business_id, terminal_id, cashier_id, status, opening_float, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ShiftID,
		m.BusinessID,
		m.TerminalID,
		m.CashierID,
		m.Status,
		m.OpeningFloat,
		m.OpenedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "terminal "+shift.TerminalID+" already has an open shift", apperrors.ErrShiftAlreadyOpen)
		}
		return apperrors.NewAppError(500, "failed to insert shift "+shift.ShiftID, err)
	}
	return nil
}

// AppendMovement appends a cash movement to an open session.
func (r *PgxShiftRepository) AppendMovement(ctx context.Context, movement domain.CashMovement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.AppendMovementInTx(ctx, tx, movement); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// AppendMovementInTx appends a cash movement inside an existing DB
// transaction. The session row is locked so the open check and the insert
// are one unit; the unique index on (shift_id, transaction_id) makes
// transaction-linked deltas idempotent.
func (r *PgxShiftRepository) AppendMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.CashMovement) error {
	var status models.ShiftStatus
	lockQuery := `SELECT status FROM shift_sessions WHERE shift_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, movement.ShiftID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAppError(404, "shift "+movement.ShiftID+" not found", apperrors.ErrNotFound)
		}
		return apperrors.NewAppError(500, "failed to lock shift "+movement.ShiftID, err)
	}
	if status != models.ShiftOpen {
		return apperrors.NewAppError(409, "shift "+movement.ShiftID+" is closed", apperrors.ErrShiftClosed)
	}

	m := mapping.ToModelCashMovement(movement)
	insertQuery := `
		INSERT INTO cash_movements (movement_id, shift_id, kind, amount, transaction_id, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, insertQuery,
		m.MovementID,
		m.ShiftID,
		m.Kind,
		m.Amount,
		m.TransactionID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "cash delta already recorded for this transaction", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert cash movement "+movement.MovementID, err)
	}
	return nil
}

// CloseShift transitions the session OPEN -> CLOSED with the reconciliation
// figures. The guarded update makes a concurrent close lose with
// ErrShiftClosed and leaves the first close's figures frozen.
func (r *PgxShiftRepository) CloseShift(ctx context.Context, shiftID string, countedCash, expectedCash, variance decimal.Decimal, closedAt time.Time) error {
	query := `
		UPDATE shift_sessions
		SET status = $2, counted_cash = $3, expected_cash = $4, variance = $5, closed_at = $6
		WHERE shift_id = $1 AND status = $7;
	`
	tag, err := r.Pool.Exec(ctx, query, shiftID, models.ShiftClosed, countedCash, expectedCash, variance, closedAt, models.ShiftOpen)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close shift "+shiftID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "shift "+shiftID+" is not open", apperrors.ErrShiftClosed)
	}
	return nil
}

// FindShiftByID retrieves a shift session with its cash movements.
func (r *PgxShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.ShiftSession, error) {
	query := `
		SELECT shift_id, business_id, terminal_id, cashier_id, status, opening_float,
		       expected_cash, counted_cash, variance, opened_at, closed_at
		FROM shift_sessions
		WHERE shift_id = $1;
	`
	shift, err := r.scanShift(r.Pool.QueryRow(ctx, query, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(404, "shift "+shiftID+" not found", apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query shift "+shiftID, err)
	}

	movements, err := r.findMovements(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	shift.Movements = movements
	return shift, nil
}

// FindOpenShiftByTerminal retrieves the terminal's open session, or
// ErrNotFound when none is open.
func (r *PgxShiftRepository) FindOpenShiftByTerminal(ctx context.Context, terminalID string) (*domain.ShiftSession, error) {
	query := `
		SELECT shift_id, business_id, terminal_id, cashier_id, status, opening_float,
		       expected_cash, counted_cash, variance, opened_at, closed_at
		FROM shift_sessions
		WHERE terminal_id = $1 AND status = $2;
	`
	shift, err := r.scanShift(r.Pool.QueryRow(ctx, query, terminalID, models.ShiftOpen))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(404, "no open shift for terminal "+terminalID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query open shift for terminal "+terminalID, err)
	}

	movements, err := r.findMovements(ctx, shift.ShiftID)
	if err != nil {
		return nil, err
	}
	shift.Movements = movements
	return shift, nil
}

func (r *PgxShiftRepository) scanShift(row pgx.Row) (*domain.ShiftSession, error) {
	var m models.ShiftSession
	err := row.Scan(
		&m.ShiftID,
		&m.BusinessID,
		&m.TerminalID,
		&m.CashierID,
		&m.Status,
		&m.OpeningFloat,
		&m.ExpectedCash,
		&m.CountedCash,
		&m.Variance,
		&m.OpenedAt,
		&m.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	shift := mapping.ToDomainShiftSession(m)
	return &shift, nil
}

func (r *PgxShiftRepository) findMovements(ctx context.Context, shiftID string) ([]domain.CashMovement, error) {
	query := `
		SELECT movement_id, shift_id, kind, amount, transaction_id, notes, created_at, created_by
		FROM cash_movements
		WHERE shift_id = $1
		ORDER BY created_at ASC, movement_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, shiftID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements for shift "+shiftID, err)
	}
	defer rows.Close()

	var movements []domain.CashMovement
	for rows.Next() {
		var m models.CashMovement
		if err := rows.Scan(&m.MovementID, &m.ShiftID, &m.Kind, &m.Amount, &m.TransactionID, &m.Notes, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash movement row", err)
		}
		movements = append(movements, mapping.ToDomainCashMovement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cash movement rows", err)
	}
	return movements, nil
}

// isUniqueViolation reports whether the error is a Postgres unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
