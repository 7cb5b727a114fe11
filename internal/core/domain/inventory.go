package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel is the shared mutable inventory counter pair for one product.
// Available-for-sale stock is OnHand minus Reserved.
type StockLevel struct {
	ProductID     string          `json:"productID"`
	OnHand        decimal.Decimal `json:"onHand"`
	Reserved      decimal.Decimal `json:"reserved"`
	Backordered   decimal.Decimal `json:"backordered"` // Quantity sold past zero available; zero when fully stocked
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// Available returns on-hand stock not held by a reservation.
func (s StockLevel) Available() decimal.Decimal {
	return s.OnHand.Sub(s.Reserved)
}

// StockDelta is one product's quantity requirement within a reservation.
type StockDelta struct {
	ProductID string          `json:"productID"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// StockReservation is a soft, reversible hold on inventory pending payment
// completion. All deltas for one transaction are applied or released together.
type StockReservation struct {
	TransactionID string       `json:"transactionID"`
	Deltas        []StockDelta `json:"deltas"`
	ReservedAt    time.Time    `json:"reservedAt"`
}

// AdjustmentKind distinguishes durable stock ledger entries.
type AdjustmentKind string

const (
	AdjustmentSale   AdjustmentKind = "SALE"   // Negative delta committed on completion
	AdjustmentReturn AdjustmentKind = "RETURN" // Positive delta from a refund reversal
)

// StockAdjustment is a durable ledger entry created when a reservation is
// committed (or a refund returns stock). Linked to its transaction for audit.
type StockAdjustment struct {
	AdjustmentID  string          `json:"adjustmentID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	ProductID     string          `json:"productID"`
	Kind          AdjustmentKind  `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"` // Signed: sales negative, returns positive
	CreatedAt     time.Time       `json:"createdAt"`
}
