package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the state of a sale transaction row.
type TransactionStatus string

const (
	Draft          TransactionStatus = "DRAFT"
	PendingPayment TransactionStatus = "PENDING_PAYMENT"
	Completed      TransactionStatus = "COMPLETED"
	Voided         TransactionStatus = "VOIDED"
	Refunded       TransactionStatus = "REFUNDED"
)

// Transaction is the database representation of a sale transaction header.
type Transaction struct {
	TransactionID         string            `json:"transactionID"` // Primary Key (UUID)
	BusinessID            string            `json:"businessID"`
	TerminalID            string            `json:"terminalID"`
	CashierID             string            `json:"cashierID"`
	Status                TransactionStatus `json:"status"`
	Subtotal              decimal.Decimal   `json:"subtotal"`
	TotalDiscount         decimal.Decimal   `json:"totalDiscount"`
	TotalTax              decimal.Decimal   `json:"totalTax"`
	GrandTotal            decimal.Decimal   `json:"grandTotal"`
	AmountTendered        decimal.Decimal   `json:"amountTendered"`
	ChangeDue             decimal.Decimal   `json:"changeDue"`
	OriginalTransactionID *string           `json:"originalTransactionID,omitempty"` // Set on refund reversals
	ReversalTransactionID *string           `json:"reversalTransactionID,omitempty"` // Set on refunded originals
	CompletedAt           *time.Time        `json:"completedAt,omitempty"`
	VoidedAt              *time.Time        `json:"voidedAt,omitempty"`
	AuditFields
}

// TransactionLine is the database representation of a priced cart line.
// The applied discount breakdown is stored as JSONB in the discounts column.
type TransactionLine struct {
	LineID         string           `json:"lineID"` // Primary Key (UUID or positional)
	TransactionID  string           `json:"transactionID"`
	ProductID      string           `json:"productID"`
	CategoryID     string           `json:"categoryID"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitPrice      decimal.Decimal  `json:"unitPrice"`
	Unit           string           `json:"unit"`
	ManualDiscount *decimal.Decimal `json:"manualDiscount,omitempty"`
	BaseAmount     decimal.Decimal  `json:"baseAmount"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
	TaxableAmount  decimal.Decimal  `json:"taxableAmount"`
	TaxAmount      decimal.Decimal  `json:"taxAmount"`
	NetAmount      decimal.Decimal  `json:"netAmount"`
	Discounts      []byte           `json:"-"` // JSONB: applied discount breakdown
}

// Tender is the database representation of one payment instrument applied to
// a transaction. Amounts on refund reversals are negative.
type Tender struct {
	TenderID      string          `json:"tenderID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference,omitempty"`
	AuditFields
}
