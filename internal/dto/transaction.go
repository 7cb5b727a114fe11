package dto

import (
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenTransactionRequest opens a new draft transaction for a terminal.
type OpenTransactionRequest struct {
	TerminalID string            `json:"terminalID" binding:"required"`
	Lines      []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AddTenderRequest appends one tender line to a pending transaction.
type AddTenderRequest struct {
	Kind      string          `json:"kind" binding:"required,oneof=CASH CARD OTHER"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference,omitempty"`
}

// RefundLineRequest identifies a line (or part of one) to refund.
type RefundLineRequest struct {
	LineID   string          `json:"lineID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// RefundTransactionRequest requests a partial or full refund. An empty Lines
// slice refunds the whole transaction. Tenders lists how the refund is paid
// back per method; each may not exceed the originally tendered amount.
type RefundTransactionRequest struct {
	Lines   []RefundLineRequest `json:"lines,omitempty" binding:"dive"`
	Tenders []AddTenderRequest  `json:"tenders" binding:"required,min=1,dive"`
}

// ListTransactionsParams holds parameters for listing transactions.
type ListTransactionsParams struct {
	TerminalID string  `form:"terminalID" binding:"required"`
	Limit      int     `form:"limit"`
	NextToken  *string `form:"nextToken"`
}

// TenderResponse is one recorded tender line.
type TenderResponse struct {
	TenderID  string          `json:"tenderID"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TransactionLineResponse is one committed line with its resolved pricing.
type TransactionLineResponse struct {
	LineID    string              `json:"lineID"`
	ProductID string              `json:"productID"`
	Quantity  decimal.Decimal     `json:"quantity"`
	UnitPrice decimal.Decimal     `json:"unitPrice"`
	Unit      string              `json:"unit"`
	Pricing   LinePricingResponse `json:"pricing"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	TransactionID         string                    `json:"transactionID"`
	TerminalID            string                    `json:"terminalID"`
	CashierID             string                    `json:"cashierID"`
	Status                string                    `json:"status"`
	Lines                 []TransactionLineResponse `json:"lines,omitempty"`
	Tenders               []TenderResponse          `json:"tenders,omitempty"`
	Subtotal              decimal.Decimal           `json:"subtotal"`
	TotalDiscount         decimal.Decimal           `json:"totalDiscount"`
	TotalTax              decimal.Decimal           `json:"totalTax"`
	GrandTotal            decimal.Decimal           `json:"grandTotal"`
	AmountTendered        decimal.Decimal           `json:"amountTendered"`
	ChangeDue             decimal.Decimal           `json:"changeDue"`
	RemainingDue          decimal.Decimal           `json:"remainingDue"`
	OriginalTransactionID *string                   `json:"originalTransactionID,omitempty"`
	ReversalTransactionID *string                   `json:"reversalTransactionID,omitempty"`
	CreatedAt             time.Time                 `json:"createdAt"`
	CompletedAt           *time.Time                `json:"completedAt,omitempty"`
}

// ListTransactionsResponse is a page of transactions with a continuation token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain transaction to its response DTO.
// remainingDue is computed by the settlement coordinator and passed in so the
// DTO layer never re-derives money.
func ToTransactionResponse(t *domain.Transaction, remainingDue decimal.Decimal) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:         t.TransactionID,
		TerminalID:            t.TerminalID,
		CashierID:             t.CashierID,
		Status:                string(t.Status),
		Subtotal:              t.Subtotal,
		TotalDiscount:         t.TotalDiscount,
		TotalTax:              t.TotalTax,
		GrandTotal:            t.GrandTotal,
		AmountTendered:        t.AmountTendered,
		ChangeDue:             t.ChangeDue,
		RemainingDue:          remainingDue,
		OriginalTransactionID: t.OriginalTransactionID,
		ReversalTransactionID: t.ReversalTransactionID,
		CreatedAt:             t.CreatedAt,
		CompletedAt:           t.CompletedAt,
	}
	for _, l := range t.Lines {
		resp.Lines = append(resp.Lines, TransactionLineResponse{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Unit:      string(l.Unit),
			Pricing: LinePricingResponse{
				LineID:         l.Pricing.LineID,
				ProductID:      l.ProductID,
				BaseAmount:     l.Pricing.BaseAmount,
				DiscountAmount: l.Pricing.DiscountAmount,
				TaxableAmount:  l.Pricing.TaxableAmount,
				TaxAmount:      l.Pricing.TaxAmount,
				NetAmount:      l.Pricing.NetAmount,
				Discounts:      toAppliedDiscountResponses(l.Pricing.Discounts),
			},
		})
	}
	for _, td := range t.Tenders {
		resp.Tenders = append(resp.Tenders, TenderResponse{
			TenderID:  td.TenderID,
			Kind:      string(td.Kind),
			Amount:    td.Amount,
			Reference: td.Reference,
			CreatedAt: td.CreatedAt,
		})
	}
	return resp
}
