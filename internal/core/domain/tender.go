package domain

import "github.com/shopspring/decimal"

// TenderKind tags a tender line by payment method. Only bookkeeping of tender
// amounts is in scope here; payment-network interaction happens in the caller
// before the tender is recorded.
type TenderKind string

const (
	TenderCash  TenderKind = "CASH"
	TenderCard  TenderKind = "CARD"
	TenderOther TenderKind = "OTHER"
)

// TenderLine is one recorded payment amount against a transaction.
// Append-only within a transaction. Reference carries an external
// authorization code when the collaborator supplies one.
type TenderLine struct {
	TenderID      string          `json:"tenderID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	Kind          TenderKind      `json:"kind"`
	Amount        decimal.Decimal `json:"amount"` // Positive on sales, negative on reversal transactions
	Reference     string          `json:"reference,omitempty"`
	AuditFields
}

// SumTenders returns the total of all tender amounts.
func SumTenders(tenders []TenderLine) decimal.Decimal {
	total := decimal.Zero
	for _, t := range tenders {
		total = total.Add(t.Amount)
	}
	return total
}

// SumTendersByKind returns the total tendered per payment method.
func SumTendersByKind(tenders []TenderLine) map[TenderKind]decimal.Decimal {
	totals := make(map[TenderKind]decimal.Decimal)
	for _, t := range tenders {
		totals[t.Kind] = totals[t.Kind].Add(t.Amount)
	}
	return totals
}
