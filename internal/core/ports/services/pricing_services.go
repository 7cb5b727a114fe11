package services

import (
	"context"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
)

// CartPricerSvc defines the read-only pricing computation.
type CartPricerSvc interface {
	// PriceCart resolves discounts and taxes for the requested cart against
	// the catalog snapshot at the given instant. Pure with respect to state:
	// identical inputs and rule snapshot yield identical output.
	PriceCart(ctx context.Context, req dto.PriceCartRequest, at time.Time) (*domain.ResolvedPricing, []domain.CartLine, error)

	// PriceLines prices already-built cart lines (e.g., the lines committed to
	// a transaction) against the catalog snapshot at the given instant.
	PriceLines(ctx context.Context, lines []domain.CartLine, at time.Time) (*domain.ResolvedPricing, error)
}

// PricingSvcFacade combines all pricing service interfaces.
type PricingSvcFacade interface {
	CartPricerSvc
}
