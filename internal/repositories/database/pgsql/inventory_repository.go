package pgsql

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	"github.com/Sam231221/AuraSwift-sub015/internal/models"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/mapping"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for stock counters,
// reservations and adjustments.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepositoryFacade
var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

// FindStockLevels retrieves current stock counters for the given products.
func (r *PgxInventoryRepository) FindStockLevels(ctx context.Context, productIDs []string) (map[string]domain.StockLevel, error) {
	if len(productIDs) == 0 {
		return map[string]domain.StockLevel{}, nil
	}

	query := `
		SELECT product_id, on_hand, reserved, backordered, last_updated_at
		FROM stock_levels
		WHERE product_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock levels", err)
	}
	defer rows.Close()

	levels := make(map[string]domain.StockLevel, len(productIDs))
	for rows.Next() {
		var m models.StockLevel
		if err := rows.Scan(&m.ProductID, &m.OnHand, &m.Reserved, &m.Backordered, &m.LastUpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock level row", err)
		}
		levels[m.ProductID] = mapping.ToDomainStockLevel(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stock level rows", err)
	}
	return levels, nil
}

// Reserve places a soft hold for the transaction within one DB transaction.
// Rows are locked in sorted product order so two terminals racing for the
// same products cannot deadlock, and exactly one wins the last unit.
func (r *PgxInventoryRepository) Reserve(ctx context.Context, transactionID string, deltas []domain.StockDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	sorted := make([]domain.StockDelta, len(deltas))
	copy(sorted, deltas)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	now := time.Now().UTC()
	for _, d := range sorted {
		level, allowNegative, err := r.lockStockRow(ctx, tx, d.ProductID)
		if err != nil {
			return err
		}

		available := level.OnHand.Sub(level.Reserved)
		shortfall := d.Quantity.Sub(available)
		if shortfall.GreaterThan(decimal.Zero) && !allowNegative {
			return apperrors.NewAppError(409, "insufficient stock for product "+d.ProductID,
				apperrors.ErrInsufficientStock)
		}

		backordered := level.Backordered
		if shortfall.GreaterThan(decimal.Zero) {
			backordered = backordered.Add(shortfall)
		}

		updateQuery := `
			UPDATE stock_levels
			SET reserved = reserved + $2, backordered = $3, last_updated_at = $4
			WHERE product_id = $1;
		`
		if _, err := tx.Exec(ctx, updateQuery, d.ProductID, d.Quantity, backordered, now); err != nil {
			return apperrors.NewAppError(500, "failed to update stock counters for product "+d.ProductID, err)
		}
	}

	// One reservation row per line; released or committed as a unit.
	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO stock_reservations (reservation_id, transaction_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, d := range sorted {
		batch.Queue(insertQuery, uuid.NewString(), transactionID, d.ProductID, d.Quantity, now)
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return apperrors.NewAppError(500, "failed to insert stock reservations", err)
	}

	return r.BaseRepository.Commit(ctx, tx)
}

// Commit converts the transaction's reservation into durable sale adjustments.
func (r *PgxInventoryRepository) Commit(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.CommitReservationInTx(ctx, tx, transactionID); err != nil {
		return err
	}
	return r.BaseRepository.Commit(ctx, tx)
}

// CommitReservationInTx applies the reservation-to-adjustment conversion
// inside an existing DB transaction. Used by transaction completion so the
// stock commit and the status change are one atomic unit.
func (r *PgxInventoryRepository) CommitReservationInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	reservations, err := r.lockReservations(ctx, tx, transactionID)
	if err != nil {
		return err
	}
	if len(reservations) == 0 {
		return apperrors.NewAppError(404, "no reservation found for transaction "+transactionID, apperrors.ErrNotFound)
	}

	now := time.Now().UTC()
	for _, res := range reservations {
		if _, _, err := r.lockStockRow(ctx, tx, res.ProductID); err != nil {
			return err
		}
		updateQuery := `
			UPDATE stock_levels
			SET on_hand = on_hand - $2,
			    reserved = reserved - $2,
			    backordered = GREATEST(backordered - $2, 0),
			    last_updated_at = $3
			WHERE product_id = $1;
		`
		if _, err := tx.Exec(ctx, updateQuery, res.ProductID, res.Quantity, now); err != nil {
			return apperrors.NewAppError(500, "failed to commit stock for product "+res.ProductID, err)
		}
	}

	batch := &pgx.Batch{}
	adjustmentQuery := `
		INSERT INTO stock_adjustments (adjustment_id, transaction_id, product_id, kind, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, res := range reservations {
		batch.Queue(adjustmentQuery, uuid.NewString(), transactionID, res.ProductID, string(domain.AdjustmentSale), res.Quantity.Neg(), now)
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return apperrors.NewAppError(500, "failed to insert stock adjustments", err)
	}

	deleteQuery := `DELETE FROM stock_reservations WHERE transaction_id = $1;`
	if _, err := tx.Exec(ctx, deleteQuery, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete reservations for transaction "+transactionID, err)
	}
	return nil
}

// Release cancels the transaction's reservation. Releasing a transaction with
// no live reservation is a no-op.
func (r *PgxInventoryRepository) Release(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	reservations, err := r.lockReservations(ctx, tx, transactionID)
	if err != nil {
		return err
	}
	if len(reservations) == 0 {
		return r.BaseRepository.Commit(ctx, tx)
	}

	now := time.Now().UTC()
	for _, res := range reservations {
		if _, _, err := r.lockStockRow(ctx, tx, res.ProductID); err != nil {
			return err
		}
		updateQuery := `
			UPDATE stock_levels
			SET reserved = reserved - $2,
			    backordered = GREATEST(backordered - $2, 0),
			    last_updated_at = $3
			WHERE product_id = $1;
		`
		if _, err := tx.Exec(ctx, updateQuery, res.ProductID, res.Quantity, now); err != nil {
			return apperrors.NewAppError(500, "failed to release stock for product "+res.ProductID, err)
		}
	}

	deleteQuery := `DELETE FROM stock_reservations WHERE transaction_id = $1;`
	if _, err := tx.Exec(ctx, deleteQuery, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete reservations for transaction "+transactionID, err)
	}
	return r.BaseRepository.Commit(ctx, tx)
}

// Return applies positive adjustments from a refund reversal.
func (r *PgxInventoryRepository) Return(ctx context.Context, transactionID string, deltas []domain.StockDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.ReturnStockInTx(ctx, tx, transactionID, deltas); err != nil {
		return err
	}
	return r.BaseRepository.Commit(ctx, tx)
}

// ReturnStockInTx applies refund returns inside an existing DB transaction.
func (r *PgxInventoryRepository) ReturnStockInTx(ctx context.Context, tx pgx.Tx, transactionID string, deltas []domain.StockDelta) error {
	sorted := make([]domain.StockDelta, len(deltas))
	copy(sorted, deltas)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	now := time.Now().UTC()
	for _, d := range sorted {
		if _, _, err := r.lockStockRow(ctx, tx, d.ProductID); err != nil {
			return err
		}
		updateQuery := `
			UPDATE stock_levels
			SET on_hand = on_hand + $2, last_updated_at = $3
			WHERE product_id = $1;
		`
		if _, err := tx.Exec(ctx, updateQuery, d.ProductID, d.Quantity, now); err != nil {
			return apperrors.NewAppError(500, "failed to return stock for product "+d.ProductID, err)
		}
	}

	batch := &pgx.Batch{}
	adjustmentQuery := `
		INSERT INTO stock_adjustments (adjustment_id, transaction_id, product_id, kind, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, d := range sorted {
		batch.Queue(adjustmentQuery, uuid.NewString(), transactionID, d.ProductID, string(domain.AdjustmentReturn), d.Quantity, now)
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return apperrors.NewAppError(500, "failed to insert return adjustments", err)
	}
	return nil
}

// lockStockRow locks a product's counter row FOR UPDATE and returns the
// current counters plus the product's negative-stock policy.
func (r *PgxInventoryRepository) lockStockRow(ctx context.Context, tx pgx.Tx, productID string) (models.StockLevel, bool, error) {
	query := `
		SELECT sl.product_id, sl.on_hand, sl.reserved, sl.backordered, sl.last_updated_at, p.allow_negative_stock
		FROM stock_levels sl
		JOIN products p ON p.product_id = sl.product_id
		WHERE sl.product_id = $1
		FOR UPDATE OF sl;
	`
	var m models.StockLevel
	var allowNegative bool
	err := tx.QueryRow(ctx, query, productID).Scan(&m.ProductID, &m.OnHand, &m.Reserved, &m.Backordered, &m.LastUpdatedAt, &allowNegative)
	if err != nil {
		if err == pgx.ErrNoRows {
			return models.StockLevel{}, false, apperrors.NewAppError(404, "stock level not found for product "+productID, apperrors.ErrNotFound)
		}
		return models.StockLevel{}, false, apperrors.NewAppError(500, "failed to lock stock row for product "+productID, err)
	}
	return m, allowNegative, nil
}

// lockReservations loads the transaction's reservation rows FOR UPDATE in
// stable product order.
func (r *PgxInventoryRepository) lockReservations(ctx context.Context, tx pgx.Tx, transactionID string) ([]models.StockReservation, error) {
	query := `
		SELECT reservation_id, transaction_id, product_id, quantity, created_at
		FROM stock_reservations
		WHERE transaction_id = $1
		ORDER BY product_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reservations for transaction "+transactionID, err)
	}
	defer rows.Close()

	var reservations []models.StockReservation
	for rows.Next() {
		var m models.StockReservation
		if err := rows.Scan(&m.ReservationID, &m.TransactionID, &m.ProductID, &m.Quantity, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reservation row", err)
		}
		reservations = append(reservations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reservation rows", err)
	}
	return reservations, nil
}

// sendBatch executes a pgx batch and surfaces the first error.
func sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
