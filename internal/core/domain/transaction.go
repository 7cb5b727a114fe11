package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the state tag of the sale lifecycle.
type TransactionStatus string

const (
	StatusDraft          TransactionStatus = "DRAFT"
	StatusPendingPayment TransactionStatus = "PENDING_PAYMENT"
	StatusCompleted      TransactionStatus = "COMPLETED"
	StatusVoided         TransactionStatus = "VOIDED"
	StatusRefunded       TransactionStatus = "REFUNDED"
)

// legalTransitions enumerates every permitted state move. Transitions are
// monotonic: no state is re-entered except the documented refund reversal,
// which creates a linked reversal transaction rather than mutating history.
var legalTransitions = map[TransactionStatus][]TransactionStatus{
	StatusDraft:          {StatusPendingPayment, StatusVoided},
	StatusPendingPayment: {StatusCompleted, StatusVoided},
	StatusCompleted:      {StatusRefunded},
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s.
func (s TransactionStatus) IsTerminal() bool {
	return len(legalTransitions[s]) == 0
}

// TransactionLine is a cart line committed to a transaction together with its
// resolved pricing. Immutable once committed.
type TransactionLine struct {
	CartLine
	Pricing LinePricing `json:"pricing"`
}

// Transaction is a single sale driven from draft to completion (or void), and
// after completion an immutable historical record except for the refund
// transition, which links a reversal transaction.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID), immutable once assigned
	BusinessID    string            `json:"businessID"`
	TerminalID    string            `json:"terminalID"`
	CashierID     string            `json:"cashierID"`
	Status        TransactionStatus `json:"status"`
	Lines         []TransactionLine `json:"lines,omitempty"`
	Tenders       []TenderLine      `json:"tenders,omitempty"`

	// Order-level totals, frozen when pricing is finalized.
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`

	// Settlement results, set on completion.
	AmountTendered decimal.Decimal `json:"amountTendered"`
	ChangeDue      decimal.Decimal `json:"changeDue"`

	// Reversal linkage. A refund creates a new transaction pointing back at the
	// original; the original gets the reversal's ID and status REFUNDED.
	OriginalTransactionID *string `json:"originalTransactionID,omitempty"`
	ReversalTransactionID *string `json:"reversalTransactionID,omitempty"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
	VoidedAt    *time.Time `json:"voidedAt,omitempty"`
	AuditFields
}

// IsReversal reports whether this transaction is the reversal of another.
func (t Transaction) IsReversal() bool {
	return t.OriginalTransactionID != nil
}

// CashTendered is the total of cash tender lines.
func (t Transaction) CashTendered() decimal.Decimal {
	total := decimal.Zero
	for _, tender := range t.Tenders {
		if tender.Kind == TenderCash {
			total = total.Add(tender.Amount)
		}
	}
	return total
}
