package pgsql

import (
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	catalogRepo := newPgxCatalogRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	shiftRepo := newPgxShiftRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, inventoryRepo, shiftRepo)

	return portsrepo.RepositoryProvider{
		CatalogRepo:     catalogRepo,
		InventoryRepo:   inventoryRepo,
		TransactionRepo: transactionRepo,
		ShiftRepo:       shiftRepo,
	}
}
