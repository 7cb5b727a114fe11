package repositories

import (
	"context"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InventoryReader defines read operations for stock data
type InventoryReader interface {
	// FindStockLevels retrieves current stock counters for the given products,
	// keyed by product ID.
	FindStockLevels(ctx context.Context, productIDs []string) (map[string]domain.StockLevel, error)
}

// InventoryWriter defines the atomic reservation lifecycle. Each method
// applies every line's adjustment or none; partial adjustment is never
// observable. Per-product serialization (row locks in a stable order) makes
// two terminals racing for the last unit resolve to exactly one winner.
type InventoryWriter interface {
	// Reserve places a soft hold for the transaction, reducing available
	// stock without committing a ledger entry. Fails with ErrInsufficientStock
	// when available < requested for a product that disallows negative stock;
	// otherwise the product is marked backordered and the hold proceeds.
	Reserve(ctx context.Context, transactionID string, deltas []domain.StockDelta) error

	// Commit converts the transaction's reservation into durable stock
	// adjustments, decrementing on-hand. Fails with ErrNotFound if no
	// reservation exists for the transaction.
	Commit(ctx context.Context, transactionID string) error

	// Release cancels the transaction's reservation, restoring available
	// stock exactly to its pre-reservation level. Releasing a transaction
	// with no live reservation is a no-op.
	Release(ctx context.Context, transactionID string) error

	// Return applies positive adjustments from a refund reversal,
	// incrementing on-hand directly (no reservation step).
	Return(ctx context.Context, transactionID string, deltas []domain.StockDelta) error

	// CommitReservationInTx performs Commit's work inside an existing DB
	// transaction, so completion can bundle the stock commit with the status
	// change as one atomic unit.
	CommitReservationInTx(ctx context.Context, tx pgx.Tx, transactionID string) error

	// ReturnStockInTx performs Return's work inside an existing DB
	// transaction, for the refund reversal's atomic unit.
	ReturnStockInTx(ctx context.Context, tx pgx.Tx, transactionID string, deltas []domain.StockDelta) error
}

// InventoryRepositoryFacade combines all inventory repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
