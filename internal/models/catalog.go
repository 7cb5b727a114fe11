package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the database representation of a sellable item. Tax and stock
// policy columns are denormalized onto the product row; the catalog is small
// relative to the transaction tables and this keeps pricing reads single-query.
type Product struct {
	ProductID     string          `json:"productID"` // Primary Key (UUID)
	BusinessID    string          `json:"businessID"`
	CategoryID    string          `json:"categoryID"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	TaxInclusive  bool            `json:"taxInclusive"`
	AllowNegative bool            `json:"allowNegativeStock"`
	AuditFields
}

// DiscountRule is the database representation of a promotion rule.
type DiscountRule struct {
	RuleID     string          `json:"ruleID"` // Primary Key (UUID)
	BusinessID string          `json:"businessID"`
	Scope      string          `json:"scope"`
	TargetID   string          `json:"targetID"` // Product or category ID; empty for ORDER scope
	Kind       string          `json:"kind"`
	Value      decimal.Decimal `json:"value"`
	Stackable  bool            `json:"stackable"`
	Priority   int             `json:"priority"`
	ValidFrom  time.Time       `json:"validFrom"`
	ValidUntil time.Time       `json:"validUntil"` // Zero means open-ended
	AuditFields
}
