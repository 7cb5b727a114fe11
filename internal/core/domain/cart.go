package domain

import "github.com/shopspring/decimal"

// UnitOfSale indicates how a line's quantity is measured.
type UnitOfSale string

const (
	UnitEach   UnitOfSale = "EACH"
	UnitWeight UnitOfSale = "WEIGHT"
)

// CartLine is one requested item in a cart. The unit price is a snapshot taken
// when the line was added; once committed to a transaction the line is immutable.
type CartLine struct {
	LineID          string           `json:"lineID"` // Primary Key (UUID)
	ProductID       string           `json:"productID"`
	CategoryID      string           `json:"categoryID"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`       // Price snapshot at add time
	PriceOverridden bool             `json:"priceOverridden"` // Cashier supplied the price; zero means a free item, not "use catalog"
	Unit            UnitOfSale       `json:"unit"`
	ManualDiscount  *decimal.Decimal `json:"manualDiscount,omitempty"` // Cashier override, replaces rule resolution
}

// BaseAmount is unit price times quantity, before any discount or tax.
func (l CartLine) BaseAmount() decimal.Decimal {
	return l.UnitPrice.Mul(l.Quantity)
}
