package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftStatus is the state tag of a cash-drawer session.
type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

// MovementKind tags a cash movement within a shift session.
type MovementKind string

const (
	MovementSale    MovementKind = "SALE"     // Net cash from a completed sale (positive)
	MovementPaidIn  MovementKind = "PAID_IN"  // Cash added to the drawer (positive)
	MovementPaidOut MovementKind = "PAID_OUT" // Cash removed from the drawer (negative)
	MovementRefund  MovementKind = "REFUND"   // Cash returned on a refund (negative)
)

// CashMovement is one immutable entry in a shift's cash ledger. Amount is
// signed. TransactionID links sale/refund movements to their transaction and
// guarantees idempotent delivery of cash deltas.
type CashMovement struct {
	MovementID    string          `json:"movementID"` // Primary Key (UUID)
	ShiftID       string          `json:"shiftID"`
	Kind          MovementKind    `json:"kind"`
	Amount        decimal.Decimal `json:"amount"` // Signed
	TransactionID *string         `json:"transactionID,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ShiftSession is the bounded period a cashier operates a terminal's cash
// drawer, from float declaration to reconciliation. Once closed it is frozen
// as an immutable audit record.
type ShiftSession struct {
	ShiftID      string           `json:"shiftID"` // Primary Key (UUID), immutable once assigned
	BusinessID   string           `json:"businessID"`
	TerminalID   string           `json:"terminalID"`
	CashierID    string           `json:"cashierID"`
	Status       ShiftStatus      `json:"status"`
	OpeningFloat decimal.Decimal  `json:"openingFloat"`
	Movements    []CashMovement   `json:"movements,omitempty"`
	ExpectedCash decimal.Decimal  `json:"expectedCash"` // Opening float + sum of signed movements
	CountedCash  *decimal.Decimal `json:"countedCash,omitempty"`
	Variance     *decimal.Decimal `json:"variance,omitempty"` // Counted - expected; a signal, not an error
	OpenedAt     time.Time        `json:"openedAt"`
	ClosedAt     *time.Time       `json:"closedAt,omitempty"`
}

// MovementSum returns the sum of all signed movement amounts.
func (s ShiftSession) MovementSum() decimal.Decimal {
	total := decimal.Zero
	for _, m := range s.Movements {
		total = total.Add(m.Amount)
	}
	return total
}

// ComputeExpectedCash derives expected drawer cash from the opening float and
// the movement ledger, without consulting any mutable counter.
func (s ShiftSession) ComputeExpectedCash() decimal.Decimal {
	return s.OpeningFloat.Add(s.MovementSum())
}
