package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
	"github.com/Sam231221/AuraSwift-sub015/internal/middleware"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/money"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// pricingService computes line and order pricing from resolver output and
// tax-category data. It consumes the catalog read-only; one product/rule
// snapshot is taken per computation so results are read-consistent.
type pricingService struct {
	catalogRepo portsrepo.CatalogRepositoryFacade
	businessID  string
	precision   int32
}

// NewPricingService creates a new PricingService.
func NewPricingService(catalogRepo portsrepo.CatalogRepositoryFacade, businessID string, precision int32) portssvc.PricingSvcFacade {
	return &pricingService{
		catalogRepo: catalogRepo,
		businessID:  businessID,
		precision:   precision,
	}
}

// Ensure pricingService implements the portssvc.PricingSvcFacade interface
var _ portssvc.PricingSvcFacade = (*pricingService)(nil)

// PriceCart builds cart lines from the request and prices them.
// Implements portssvc.PricingSvcFacade. Line IDs are assigned positionally so
// identical requests yield identical pricing (required for replay/audit).
func (s *pricingService) PriceCart(ctx context.Context, req dto.PriceCartRequest, at time.Time) (*domain.ResolvedPricing, []domain.CartLine, error) {
	lines := make([]domain.CartLine, len(req.Lines))
	for i, lr := range req.Lines {
		lines[i] = domain.CartLine{
			LineID:         fmt.Sprintf("line-%d", i+1),
			ProductID:      lr.ProductID,
			Quantity:       lr.Quantity,
			Unit:           domain.UnitOfSale(lr.Unit),
			ManualDiscount: lr.ManualDiscount,
		}
		if lr.Unit == "" {
			lines[i].Unit = domain.UnitEach
		}
		if lr.UnitPrice != nil {
			lines[i].UnitPrice = *lr.UnitPrice
			lines[i].PriceOverridden = true
		}
	}

	pricing, err := s.priceLines(ctx, lines, at)
	if err != nil {
		return nil, nil, err
	}
	return pricing, lines, nil
}

// PriceLines prices already-built cart lines.
// Implements portssvc.PricingSvcFacade.
func (s *pricingService) PriceLines(ctx context.Context, lines []domain.CartLine, at time.Time) (*domain.ResolvedPricing, error) {
	return s.priceLines(ctx, lines, at)
}

// priceLines validates inputs, snapshots catalog data, resolves discounts and
// computes per-line and order totals. All validation happens before any
// catalog access so malformed carts are rejected fast.
func (s *pricingService) priceLines(ctx context.Context, lines []domain.CartLine, at time.Time) (*domain.ResolvedPricing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart has no lines", apperrors.ErrInvalidPricingInput)
	}

	productIDs := make([]string, 0, len(lines))
	for i := range lines {
		if lines[i].Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrInvalidPricingInput, lines[i].ProductID)
		}
		productIDs = append(productIDs, lines[i].ProductID)
	}

	products, err := s.catalogRepo.FindProductsByIDs(ctx, uniqueStrings(productIDs))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown product in cart", apperrors.ErrInvalidPricingInput)
		}
		logger.Error("Failed to fetch products for pricing", "error", err)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	// Complete the price snapshot and validate against the catalog.
	for i := range lines {
		product, found := products[lines[i].ProductID]
		if !found {
			return nil, fmt.Errorf("%w: unknown product %s", apperrors.ErrInvalidPricingInput, lines[i].ProductID)
		}
		if !lines[i].PriceOverridden {
			lines[i].UnitPrice = product.UnitPrice
		}
		if lines[i].UnitPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: unit price must not be negative for product %s", apperrors.ErrInvalidPricingInput, lines[i].ProductID)
		}
		if product.Tax.Rate.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: tax rate must not be negative for product %s", apperrors.ErrInvalidPricingInput, lines[i].ProductID)
		}
		lines[i].CategoryID = product.CategoryID
	}

	rules, err := s.catalogRepo.ListActiveDiscountRules(ctx, s.businessID, at)
	if err != nil {
		logger.Error("Failed to fetch discount rules for pricing", "error", err)
		return nil, fmt.Errorf("failed to fetch discount rules: %w", err)
	}

	discounts := ResolveDiscounts(lines, rules, at, s.precision)

	pricing := &domain.ResolvedPricing{
		Lines:          make([]domain.LinePricing, len(lines)),
		OrderDiscounts: discounts.Order,
	}
	subtotal := decimal.Zero
	totalTax := decimal.Zero
	lineDiscounts := decimal.Zero

	for i, line := range lines {
		product := products[line.ProductID]
		lp := priceLine(line, discounts.Line[line.LineID], product.Tax, s.precision)
		pricing.Lines[i] = lp
		subtotal = subtotal.Add(lp.BaseAmount)
		lineDiscounts = lineDiscounts.Add(lp.DiscountAmount)
		// Tax embedded in a tax-inclusive price is already part of the base
		// amount; only tax added on top of exclusive prices enters the total,
		// keeping grand = subtotal - discount + tax an identity.
		if !product.Tax.Inclusive {
			totalTax = totalTax.Add(lp.TaxAmount)
		}
	}

	pricing.Subtotal = subtotal
	pricing.TotalDiscount = lineDiscounts.Add(discounts.OrderDiscountTotal())
	pricing.TotalTax = totalTax
	// Rounded to currency precision at the order level only; line rounding
	// already bounds drift to one minor unit overall.
	pricing.GrandTotal = money.Round(subtotal.Sub(pricing.TotalDiscount).Add(totalTax), s.precision)

	logger.Debug("Cart priced",
		"lines", len(lines),
		"subtotal", pricing.Subtotal.String(),
		"grand_total", pricing.GrandTotal.String(),
	)
	return pricing, nil
}

// priceLine computes one line's extended price, discount, tax and net.
// Tax-inclusive prices embed the tax in the discounted amount
// (tax = taxable * r/(1+r)); exclusive prices add it on top.
// Tax is rounded half-up at currency precision.
func priceLine(line domain.CartLine, applied []domain.AppliedDiscount, tax domain.TaxCategory, precision int32) domain.LinePricing {
	base := line.BaseAmount()
	discount := decimal.Zero
	for _, d := range applied {
		discount = discount.Add(d.Amount)
	}
	taxable := money.FloorZero(base.Sub(discount))

	var taxAmount decimal.Decimal
	var net decimal.Decimal
	if tax.Inclusive {
		taxAmount = money.Round(taxable.Mul(tax.Rate).Div(one.Add(tax.Rate)), precision)
		net = taxable
	} else {
		taxAmount = money.Round(taxable.Mul(tax.Rate), precision)
		net = taxable.Add(taxAmount)
	}

	return domain.LinePricing{
		LineID:         line.LineID,
		BaseAmount:     base,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		TaxAmount:      taxAmount,
		NetAmount:      net,
		Discounts:      applied,
	}
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
