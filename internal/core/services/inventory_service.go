package services

import (
	"context"
	"fmt"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/middleware"
	"github.com/shopspring/decimal"
)

// inventoryService fronts the stock ledger's reservation lifecycle. The
// repository serializes per-product access; this layer validates deltas and
// keeps all-or-nothing semantics visible in one place.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

// Ensure inventoryService implements the portssvc.InventorySvcFacade interface
var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// GetStockLevels retrieves current stock counters for the given products.
func (s *inventoryService) GetStockLevels(ctx context.Context, productIDs []string) (map[string]domain.StockLevel, error) {
	if len(productIDs) == 0 {
		return map[string]domain.StockLevel{}, nil
	}
	return s.inventoryRepo.FindStockLevels(ctx, productIDs)
}

// Reserve places a soft hold on stock for the transaction's lines.
// Implements portssvc.InventorySvcFacade.
func (s *inventoryService) Reserve(ctx context.Context, transactionID string, deltas []domain.StockDelta) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(deltas) == 0 {
		return fmt.Errorf("%w: reservation requires at least one stock delta", apperrors.ErrValidation)
	}
	for _, d := range deltas {
		if d.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: reservation quantity must be positive for product %s", apperrors.ErrValidation, d.ProductID)
		}
	}

	if err := s.inventoryRepo.Reserve(ctx, transactionID, deltas); err != nil {
		return err
	}
	logger.Debug("Stock reserved", "transaction_id", transactionID, "products", len(deltas))
	return nil
}

// Release cancels the transaction's hold, restoring availability exactly.
// Implements portssvc.InventorySvcFacade.
func (s *inventoryService) Release(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.inventoryRepo.Release(ctx, transactionID); err != nil {
		return err
	}
	logger.Debug("Stock reservation released", "transaction_id", transactionID)
	return nil
}
