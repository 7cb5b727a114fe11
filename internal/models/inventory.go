package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel is the database representation of a product's stock counters.
type StockLevel struct {
	ProductID     string          `json:"productID"` // Primary Key
	OnHand        decimal.Decimal `json:"onHand"`
	Reserved      decimal.Decimal `json:"reserved"`
	Backordered   decimal.Decimal `json:"backordered"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// StockReservation is one live hold line placed by a pending transaction.
// Rows are deleted when the hold is committed or released.
type StockReservation struct {
	ReservationID string          `json:"reservationID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	ProductID     string          `json:"productID"`
	Quantity      decimal.Decimal `json:"quantity"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// StockAdjustment is one immutable ledger entry recording a durable stock
// change from a completed sale or a refund return.
type StockAdjustment struct {
	AdjustmentID  string          `json:"adjustmentID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	ProductID     string          `json:"productID"`
	Kind          string          `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"` // Signed: negative for sales, positive for returns
	CreatedAt     time.Time       `json:"createdAt"`
}
