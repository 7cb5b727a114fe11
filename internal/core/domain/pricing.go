package domain

import "github.com/shopspring/decimal"

// LinePricing is the derived pricing of a single cart line. It is recomputed
// whenever its inputs change and never persisted independently of its line.
type LinePricing struct {
	LineID         string            `json:"lineID"`
	BaseAmount     decimal.Decimal   `json:"baseAmount"`     // unit price x quantity
	DiscountAmount decimal.Decimal   `json:"discountAmount"` // sum of applied discounts, floored at zero
	TaxableAmount  decimal.Decimal   `json:"taxableAmount"`  // base - discount
	TaxAmount      decimal.Decimal   `json:"taxAmount"`      // rounded half-up at currency precision
	NetAmount      decimal.Decimal   `json:"netAmount"`      // taxable (inclusive) or taxable+tax (exclusive)
	Discounts      []AppliedDiscount `json:"discounts,omitempty"`
}

// ResolvedPricing aggregates line pricings into order totals.
// Invariant: GrandTotal = Subtotal - TotalDiscount + TotalTax, rounded to
// currency precision at the order level only.
type ResolvedPricing struct {
	Lines          []LinePricing     `json:"lines"`
	OrderDiscounts []AppliedDiscount `json:"orderDiscounts,omitempty"` // Order-wide rules, resolved last
	Subtotal       decimal.Decimal   `json:"subtotal"`
	TotalDiscount  decimal.Decimal   `json:"totalDiscount"` // Line discounts plus order discounts
	TotalTax       decimal.Decimal   `json:"totalTax"`      // Tax added on top of exclusive prices; embedded tax stays in Subtotal
	GrandTotal     decimal.Decimal   `json:"grandTotal"`
}
