package domain

import "github.com/shopspring/decimal"

// TaxCategory describes how a product's tax is computed.
// Rate is a fraction (0.10 for 10%). When Inclusive is true the unit price
// already embeds the tax.
type TaxCategory struct {
	Rate      decimal.Decimal `json:"rate"`
	Inclusive bool            `json:"inclusive"`
}

// StockPolicy describes how a product behaves when stock runs out.
// AllowNegative permits backordered sales below zero available stock.
type StockPolicy struct {
	AllowNegative bool `json:"allowNegative"`
}

// Product is the read-only catalog snapshot this engine consumes.
// Catalog management owns these records; the engine never mutates them.
type Product struct {
	ProductID  string          `json:"productID"`  // Primary Key (UUID)
	BusinessID string          `json:"businessID"` // Owning business
	CategoryID string          `json:"categoryID"` // Discount-rule category scope
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"` // Current list price
	Tax        TaxCategory     `json:"tax"`
	Stock      StockPolicy     `json:"stock"`
}
