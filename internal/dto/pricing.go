package dto

import (
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CartLineRequest is one requested cart line. UnitPrice overrides the catalog
// price snapshot when supplied (e.g., a price-embedding barcode); otherwise
// the current catalog price is snapshotted.
type CartLineRequest struct {
	ProductID      string           `json:"productID" binding:"required"`
	Quantity       decimal.Decimal  `json:"quantity" binding:"required"`
	Unit           string           `json:"unit,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unitPrice,omitempty"`
	ManualDiscount *decimal.Decimal `json:"manualDiscount,omitempty"`
}

// PriceCartRequest asks for a read-only pricing of a cart.
type PriceCartRequest struct {
	Lines []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AppliedDiscountResponse reports one applied discount rule.
type AppliedDiscountResponse struct {
	RuleID string          `json:"ruleID,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// LinePricingResponse is the resolved pricing of one line.
type LinePricingResponse struct {
	LineID         string                    `json:"lineID"`
	ProductID      string                    `json:"productID"`
	BaseAmount     decimal.Decimal           `json:"baseAmount"`
	DiscountAmount decimal.Decimal           `json:"discountAmount"`
	TaxableAmount  decimal.Decimal           `json:"taxableAmount"`
	TaxAmount      decimal.Decimal           `json:"taxAmount"`
	NetAmount      decimal.Decimal           `json:"netAmount"`
	Discounts      []AppliedDiscountResponse `json:"discounts,omitempty"`
}

// PricingResponse is the resolved pricing of a whole cart.
type PricingResponse struct {
	Lines          []LinePricingResponse     `json:"lines"`
	OrderDiscounts []AppliedDiscountResponse `json:"orderDiscounts,omitempty"`
	Subtotal       decimal.Decimal           `json:"subtotal"`
	TotalDiscount  decimal.Decimal           `json:"totalDiscount"`
	TotalTax       decimal.Decimal           `json:"totalTax"`
	GrandTotal     decimal.Decimal           `json:"grandTotal"`
}

// ToPricingResponse converts resolved domain pricing to its response DTO.
// Product IDs are carried from the priced lines so clients can correlate.
func ToPricingResponse(p *domain.ResolvedPricing, lines []domain.CartLine) PricingResponse {
	productByLine := make(map[string]string, len(lines))
	for _, l := range lines {
		productByLine[l.LineID] = l.ProductID
	}
	resp := PricingResponse{
		Lines:          make([]LinePricingResponse, len(p.Lines)),
		OrderDiscounts: toAppliedDiscountResponses(p.OrderDiscounts),
		Subtotal:       p.Subtotal,
		TotalDiscount:  p.TotalDiscount,
		TotalTax:       p.TotalTax,
		GrandTotal:     p.GrandTotal,
	}
	for i, lp := range p.Lines {
		resp.Lines[i] = LinePricingResponse{
			LineID:         lp.LineID,
			ProductID:      productByLine[lp.LineID],
			BaseAmount:     lp.BaseAmount,
			DiscountAmount: lp.DiscountAmount,
			TaxableAmount:  lp.TaxableAmount,
			TaxAmount:      lp.TaxAmount,
			NetAmount:      lp.NetAmount,
			Discounts:      toAppliedDiscountResponses(lp.Discounts),
		}
	}
	return resp
}

func toAppliedDiscountResponses(ds []domain.AppliedDiscount) []AppliedDiscountResponse {
	if len(ds) == 0 {
		return nil
	}
	out := make([]AppliedDiscountResponse, len(ds))
	for i, d := range ds {
		out[i] = AppliedDiscountResponse{RuleID: d.RuleID, Amount: d.Amount}
	}
	return out
}
