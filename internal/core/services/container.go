package services

import (
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
)

// NewContainer initializes and returns a ServiceContainer with all
// application services wired against the given repositories.
func NewContainer(repos *portsrepo.RepositoryProvider, businessID string, precision int32) *portssvc.ServiceContainer {
	pricingSvc := NewPricingService(repos.CatalogRepo, businessID, precision)
	inventorySvc := NewInventoryService(repos.InventoryRepo)
	transactionSvc := NewTransactionService(repos.TransactionRepo, repos.InventoryRepo, repos.ShiftRepo, pricingSvc, businessID, precision)
	shiftSvc := NewShiftService(repos.ShiftRepo, businessID, precision)

	return &portssvc.ServiceContainer{
		Pricing:     pricingSvc,
		Inventory:   inventorySvc,
		Transaction: transactionSvc,
		Shift:       shiftSvc,
	}
}
