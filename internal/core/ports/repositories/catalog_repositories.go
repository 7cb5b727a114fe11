package repositories

import (
	"context"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
)

// CatalogReader defines the read-only lookups this engine consumes from
// catalog management. Results must be read-consistent for the duration of one
// pricing computation, so batch lookups are preferred over per-item calls.
type CatalogReader interface {
	// FindProductsByIDs retrieves the catalog snapshot (price, tax category,
	// stock policy) for the given product IDs, keyed by product ID. Unknown
	// products are absent from the map; the caller decides whether that is
	// an error.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListActiveDiscountRules retrieves discount rules for the business whose
	// validity window contains the given instant.
	ListActiveDiscountRules(ctx context.Context, businessID string, at time.Time) ([]domain.DiscountRule, error)
}

// CatalogRepositoryFacade combines all catalog read interfaces.
type CatalogRepositoryFacade interface {
	CatalogReader
}
