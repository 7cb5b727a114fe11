package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind is the tagged variant over discount computations.
type DiscountKind string

const (
	Percentage  DiscountKind = "PERCENTAGE"   // Value is a percent of the amount (10 = 10%)
	FixedAmount DiscountKind = "FIXED_AMOUNT" // Value is an absolute amount per line/order
)

// DiscountScope determines which cart lines a rule can match.
type DiscountScope string

const (
	ScopeProduct  DiscountScope = "PRODUCT"
	ScopeCategory DiscountScope = "CATEGORY"
	ScopeOrder    DiscountScope = "ORDER"
)

// DiscountRule is a read-only discount definition owned by catalog management.
// Scope targets either a product, a category, or the whole order; TargetID is
// empty for order-wide rules.
type DiscountRule struct {
	RuleID     string          `json:"ruleID"` // Primary Key (UUID)
	BusinessID string          `json:"businessID"`
	Scope      DiscountScope   `json:"scope"`
	TargetID   string          `json:"targetID"` // ProductID or CategoryID depending on Scope
	Kind       DiscountKind    `json:"kind"`
	Value      decimal.Decimal `json:"value"`
	Stackable  bool            `json:"stackable"`
	Priority   int             `json:"priority"` // Higher wins when stacking is disallowed
	ValidFrom  time.Time       `json:"validFrom"`
	ValidUntil time.Time       `json:"validUntil"`
}

// IsActiveAt reports whether the rule's validity window contains the instant.
func (r DiscountRule) IsActiveAt(at time.Time) bool {
	if at.Before(r.ValidFrom) {
		return false
	}
	if !r.ValidUntil.IsZero() && at.After(r.ValidUntil) {
		return false
	}
	return true
}

// AmountFor computes the discount the rule yields against the given amount,
// clamped to [0, amount]. A percentage rule applies Value percent; a fixed
// rule applies Value outright.
func (r DiscountRule) AmountFor(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	var d decimal.Decimal
	switch r.Kind {
	case Percentage:
		d = amount.Mul(r.Value).Div(decimal.NewFromInt(100))
	case FixedAmount:
		d = r.Value
	default:
		return decimal.Zero
	}
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if d.GreaterThan(amount) {
		return amount
	}
	return d
}

// AppliedDiscount records which rule produced how much discount.
// RuleID is empty for a cashier's manual override.
type AppliedDiscount struct {
	RuleID string          `json:"ruleID"`
	Amount decimal.Decimal `json:"amount"`
}
