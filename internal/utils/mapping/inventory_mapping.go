package mapping

import (
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/Sam231221/AuraSwift-sub015/internal/models"
)

// ToDomainStockLevel converts a model StockLevel to a domain StockLevel
func ToDomainStockLevel(m models.StockLevel) domain.StockLevel {
	return domain.StockLevel{
		ProductID:     m.ProductID,
		OnHand:        m.OnHand,
		Reserved:      m.Reserved,
		Backordered:   m.Backordered,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
