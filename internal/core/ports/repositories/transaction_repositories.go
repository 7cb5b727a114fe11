package repositories

import (
	"context"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
)

// TransactionReader defines read operations for sale transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its lines and tenders.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByTerminal retrieves a paginated list of transactions
	// for a terminal using token-based pagination, newest first.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactionsByTerminal(ctx context.Context, terminalID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for sale transaction data.
// Status moves are guarded by the expected prior status so a concurrent
// update surfaces as ErrConflict rather than silently overwriting.
type TransactionWriter interface {
	// SaveTransaction persists a new draft transaction with its lines.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionStatus moves a transaction from one status to another.
	// The update applies only while the stored status equals from; otherwise
	// ErrConflict is returned and nothing changes.
	UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, updatedBy string, updatedAt time.Time) error

	// SaveTenderLine appends a tender line to a pending transaction.
	SaveTenderLine(ctx context.Context, tender domain.TenderLine) error

	// CompleteTransaction atomically marks the transaction completed (with its
	// settlement totals), converts its stock reservation into durable
	// adjustments, and appends the net cash movement to the open shift.
	// movement is nil when the sale involved no cash. Fails with ErrConflict
	// when the stored status is no longer PENDING_PAYMENT, ErrShiftClosed when
	// the shift no longer accepts movements, and ErrDuplicate when the cash
	// delta was already delivered for this transaction.
	CompleteTransaction(ctx context.Context, txn domain.Transaction, movement *domain.CashMovement) error

	// SaveReversal atomically persists a reversal transaction, links it to the
	// original (status REFUNDED), returns the reversed stock to on-hand, and
	// appends the refund cash movement when cash is returned.
	SaveReversal(ctx context.Context, reversal domain.Transaction, originalID string, returns []domain.StockDelta, movement *domain.CashMovement) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// database transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
