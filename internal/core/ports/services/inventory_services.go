package services

import (
	"context"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
)

// InventorySvcFacade exposes the reservation lifecycle of the stock ledger.
// All three mutations are atomic per transaction: every line's adjustment
// succeeds or none does.
type InventorySvcFacade interface {
	// GetStockLevels retrieves current counters for the given products.
	GetStockLevels(ctx context.Context, productIDs []string) (map[string]domain.StockLevel, error)

	// Reserve places a soft hold for the transaction's lines.
	Reserve(ctx context.Context, transactionID string, deltas []domain.StockDelta) error

	// Release cancels the transaction's hold, restoring availability exactly.
	Release(ctx context.Context, transactionID string) error
}
