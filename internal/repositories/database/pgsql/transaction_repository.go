package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	"github.com/Sam231221/AuraSwift-sub015/internal/models"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/mapping"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
	inventoryRepo portsrepo.InventoryRepositoryFacade
	shiftRepo     portsrepo.ShiftRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for sale transaction
// data. The inventory and shift repositories participate in completion and
// reversal so the cross-entity writes share one DB transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, inventoryRepo portsrepo.InventoryRepositoryFacade, shiftRepo portsrepo.ShiftRepositoryFacade) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		inventoryRepo:  inventoryRepo,
		shiftRepo:      shiftRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// SaveTransaction persists a new draft transaction and its lines within a DB transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertTransaction(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	headerQuery := `
		INSERT INTO pos_transactions (
			transaction_id, business_id, terminal_id, cashier_id, status,
			subtotal, total_discount, total_tax, grand_total,
			amount_tendered, change_due,
			original_transaction_id, reversal_transaction_id,
			completed_at, voided_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, headerQuery,
		m.TransactionID,
		m.BusinessID,
		m.TerminalID,
		m.CashierID,
		m.Status,
		m.Subtotal,
		m.TotalDiscount,
		m.TotalTax,
		m.GrandTotal,
		m.AmountTendered,
		m.ChangeDue,
		m.OriginalTransactionID,
		m.ReversalTransactionID,
		m.CompletedAt,
		m.VoidedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO transaction_lines (
			line_id, transaction_id, product_id, category_id, quantity, unit_price, unit,
			manual_discount, base_amount, discount_amount, taxable_amount, tax_amount, net_amount, discounts
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, line := range txn.Lines {
		ml, err := mapping.ToModelTransactionLine(txn.TransactionID, line)
		if err != nil {
			return apperrors.NewAppError(500, "failed to map transaction line "+line.LineID, err)
		}
		batch.Queue(lineQuery,
			ml.LineID,
			ml.TransactionID,
			ml.ProductID,
			ml.CategoryID,
			ml.Quantity,
			ml.UnitPrice,
			ml.Unit,
			ml.ManualDiscount,
			ml.BaseAmount,
			ml.DiscountAmount,
			ml.TaxableAmount,
			ml.TaxAmount,
			ml.NetAmount,
			ml.Discounts,
		)
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction lines", err)
	}

	tenderBatch := &pgx.Batch{}
	for _, tender := range txn.Tenders {
		queueTenderInsert(tenderBatch, mapping.ToModelTender(tender))
	}
	if tenderBatch.Len() > 0 {
		if err := sendBatch(ctx, tx, tenderBatch); err != nil {
			return apperrors.NewAppError(500, "failed to insert tenders", err)
		}
	}
	return nil
}

const tenderInsertQuery = `
	INSERT INTO tenders (tender_id, transaction_id, kind, amount, reference, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

func queueTenderInsert(batch *pgx.Batch, m models.Tender) {
	batch.Queue(tenderInsertQuery,
		m.TenderID,
		m.TransactionID,
		m.Kind,
		m.Amount,
		m.Reference,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

// UpdateTransactionStatus moves a transaction between statuses with a guarded
// update. Zero rows affected means a concurrent writer got there first.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE pos_transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4,
		    voided_at = CASE WHEN $2 = 'VOIDED' THEN $3 ELSE voided_at END
		WHERE transaction_id = $1 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, string(to), updatedAt, updatedBy, string(from))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "transaction "+transactionID+" is no longer "+string(from), apperrors.ErrConflict)
	}
	return nil
}

// SaveTenderLine appends a tender to a pending transaction.
func (r *PgxTransactionRepository) SaveTenderLine(ctx context.Context, tender domain.TenderLine) error {
	m := mapping.ToModelTender(tender)
	_, err := r.Pool.Exec(ctx, tenderInsertQuery,
		m.TenderID,
		m.TransactionID,
		m.Kind,
		m.Amount,
		m.Reference,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert tender "+tender.TenderID, err)
	}
	return nil
}

// CompleteTransaction atomically finalizes a sale: the guarded status update,
// the settlement totals, the reservation commit, and the shift cash delta all
// share one DB transaction. Any failure rolls the whole unit back.
func (r *PgxTransactionRepository) CompleteTransaction(ctx context.Context, txn domain.Transaction, movement *domain.CashMovement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE pos_transactions
		SET status = $2, amount_tendered = $3, change_due = $4, completed_at = $5,
		    last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $1 AND status = $7;
	`
	tag, err := tx.Exec(ctx, query,
		txn.TransactionID,
		string(domain.StatusCompleted),
		txn.AmountTendered,
		txn.ChangeDue,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
		string(domain.StatusPendingPayment),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete transaction "+txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "transaction "+txn.TransactionID+" is no longer pending payment", apperrors.ErrConflict)
	}

	if err := r.inventoryRepo.CommitReservationInTx(ctx, tx, txn.TransactionID); err != nil {
		return err
	}

	if movement != nil {
		if err := r.shiftRepo.AppendMovementInTx(ctx, tx, *movement); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// SaveReversal atomically persists a refund reversal: the reversal row with
// its lines and negated tenders, the original's REFUNDED status and link, the
// stock returns, and the refund cash delta.
func (r *PgxTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction, originalID string, returns []domain.StockDelta, movement *domain.CashMovement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertTransaction(ctx, tx, reversal); err != nil {
		return err
	}

	linkQuery := `
		UPDATE pos_transactions
		SET status = $2, reversal_transaction_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, linkQuery,
		originalID,
		string(domain.StatusRefunded),
		reversal.TransactionID,
		reversal.LastUpdatedAt,
		reversal.LastUpdatedBy,
		string(domain.StatusCompleted),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark transaction "+originalID+" refunded", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "transaction "+originalID+" is no longer completed", apperrors.ErrConflict)
	}

	if err := r.inventoryRepo.ReturnStockInTx(ctx, tx, reversal.TransactionID, returns); err != nil {
		return err
	}

	if movement != nil {
		if err := r.shiftRepo.AppendMovementInTx(ctx, tx, *movement); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with its lines and tenders.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	headerQuery := `
		SELECT transaction_id, business_id, terminal_id, cashier_id, status,
		       subtotal, total_discount, total_tax, grand_total,
		       amount_tendered, change_due,
		       original_transaction_id, reversal_transaction_id,
		       completed_at, voided_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM pos_transactions
		WHERE transaction_id = $1;
	`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, headerQuery, transactionID).Scan(
		&m.TransactionID,
		&m.BusinessID,
		&m.TerminalID,
		&m.CashierID,
		&m.Status,
		&m.Subtotal,
		&m.TotalDiscount,
		&m.TotalTax,
		&m.GrandTotal,
		&m.AmountTendered,
		&m.ChangeDue,
		&m.OriginalTransactionID,
		&m.ReversalTransactionID,
		&m.CompletedAt,
		&m.VoidedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(404, "transaction "+transactionID+" not found", apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query transaction "+transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)

	lines, err := r.findLines(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	txn.Lines = lines

	tenders, err := r.findTenders(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	txn.Tenders = tenders
	return &txn, nil
}

// ListTransactionsByTerminal retrieves a paginated list of a terminal's
// transactions using token-based pagination, newest first. Only headers are
// loaded; callers fetch lines and tenders per transaction when needed.
func (r *PgxTransactionRepository) ListTransactionsByTerminal(ctx context.Context, terminalID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT transaction_id, business_id, terminal_id, cashier_id, status,
		       subtotal, total_discount, total_tax, grand_total,
		       amount_tendered, change_due,
		       original_transaction_id, reversal_transaction_id,
		       completed_at, voided_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM pos_transactions
		WHERE terminal_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`

	args := []interface{}{terminalID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (created_at, transaction_id) < ($2, $3) `
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for terminal "+terminalID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.BusinessID,
			&m.TerminalID,
			&m.CashierID,
			&m.Status,
			&m.Subtotal,
			&m.TotalDiscount,
			&m.TotalTax,
			&m.GrandTotal,
			&m.AmountTendered,
			&m.ChangeDue,
			&m.OriginalTransactionID,
			&m.ReversalTransactionID,
			&m.CompletedAt,
			&m.VoidedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var token *string
	if len(txns) == fetchLimit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		encoded := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		token = &encoded
	}
	return txns, token, nil
}

func (r *PgxTransactionRepository) findLines(ctx context.Context, transactionID string) ([]domain.TransactionLine, error) {
	query := `
		SELECT line_id, transaction_id, product_id, category_id, quantity, unit_price, unit,
		       manual_discount, base_amount, discount_amount, taxable_amount, tax_amount, net_amount, discounts
		FROM transaction_lines
		WHERE transaction_id = $1
		ORDER BY line_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for transaction "+transactionID, err)
	}
	defer rows.Close()

	var lines []domain.TransactionLine
	for rows.Next() {
		var m models.TransactionLine
		if err := rows.Scan(
			&m.LineID,
			&m.TransactionID,
			&m.ProductID,
			&m.CategoryID,
			&m.Quantity,
			&m.UnitPrice,
			&m.Unit,
			&m.ManualDiscount,
			&m.BaseAmount,
			&m.DiscountAmount,
			&m.TaxableAmount,
			&m.TaxAmount,
			&m.NetAmount,
			&m.Discounts,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction line row", err)
		}
		line, err := mapping.ToDomainTransactionLine(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map transaction line "+m.LineID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction line rows", err)
	}
	return lines, nil
}

func (r *PgxTransactionRepository) findTenders(ctx context.Context, transactionID string) ([]domain.TenderLine, error) {
	query := `
		SELECT tender_id, transaction_id, kind, amount, reference, created_at, created_by, last_updated_at, last_updated_by
		FROM tenders
		WHERE transaction_id = $1
		ORDER BY created_at ASC, tender_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tenders for transaction "+transactionID, err)
	}
	defer rows.Close()

	var tenders []domain.TenderLine
	for rows.Next() {
		var m models.Tender
		if err := rows.Scan(
			&m.TenderID,
			&m.TransactionID,
			&m.Kind,
			&m.Amount,
			&m.Reference,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tender row", err)
		}
		tenders = append(tenders, mapping.ToDomainTender(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tender rows", err)
	}
	return tenders, nil
}
