package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftStatus indicates the state of a shift session row.
type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

// ShiftSession is the database representation of a cash-drawer session.
type ShiftSession struct {
	ShiftID      string           `json:"shiftID"` // Primary Key (UUID)
	BusinessID   string           `json:"businessID"`
	TerminalID   string           `json:"terminalID"`
	CashierID    string           `json:"cashierID"`
	Status       ShiftStatus      `json:"status"`
	OpeningFloat decimal.Decimal  `json:"openingFloat"`
	ExpectedCash *decimal.Decimal `json:"expectedCash,omitempty"` // Set at close
	CountedCash  *decimal.Decimal `json:"countedCash,omitempty"`  // Set at close
	Variance     *decimal.Decimal `json:"variance,omitempty"`     // Set at close
	OpenedAt     time.Time        `json:"openedAt"`
	ClosedAt     *time.Time       `json:"closedAt,omitempty"`
}

// CashMovement is one immutable row in a shift's cash ledger.
type CashMovement struct {
	MovementID    string          `json:"movementID"` // Primary Key (UUID)
	ShiftID       string          `json:"shiftID"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"` // Signed
	TransactionID *string         `json:"transactionID,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}
