package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/Sam231221/AuraSwift-sub015/internal/models"
)

// ToModelTransaction converts a domain Transaction header to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:         d.TransactionID,
		BusinessID:            d.BusinessID,
		TerminalID:            d.TerminalID,
		CashierID:             d.CashierID,
		Status:                models.TransactionStatus(d.Status),
		Subtotal:              d.Subtotal,
		TotalDiscount:         d.TotalDiscount,
		TotalTax:              d.TotalTax,
		GrandTotal:            d.GrandTotal,
		AmountTendered:        d.AmountTendered,
		ChangeDue:             d.ChangeDue,
		OriginalTransactionID: d.OriginalTransactionID,
		ReversalTransactionID: d.ReversalTransactionID,
		CompletedAt:           d.CompletedAt,
		VoidedAt:              d.VoidedAt,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction header to a domain
// Transaction. Lines and tenders are loaded and attached separately.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:         m.TransactionID,
		BusinessID:            m.BusinessID,
		TerminalID:            m.TerminalID,
		CashierID:             m.CashierID,
		Status:                domain.TransactionStatus(m.Status),
		Subtotal:              m.Subtotal,
		TotalDiscount:         m.TotalDiscount,
		TotalTax:              m.TotalTax,
		GrandTotal:            m.GrandTotal,
		AmountTendered:        m.AmountTendered,
		ChangeDue:             m.ChangeDue,
		OriginalTransactionID: m.OriginalTransactionID,
		ReversalTransactionID: m.ReversalTransactionID,
		CompletedAt:           m.CompletedAt,
		VoidedAt:              m.VoidedAt,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransactionLine converts a domain TransactionLine to a model row,
// serializing the applied discount breakdown to JSON.
func ToModelTransactionLine(transactionID string, d domain.TransactionLine) (models.TransactionLine, error) {
	discounts, err := json.Marshal(d.Pricing.Discounts)
	if err != nil {
		return models.TransactionLine{}, fmt.Errorf("failed to marshal line discounts: %w", err)
	}
	return models.TransactionLine{
		LineID:         d.LineID,
		TransactionID:  transactionID,
		ProductID:      d.ProductID,
		CategoryID:     d.CategoryID,
		Quantity:       d.Quantity,
		UnitPrice:      d.UnitPrice,
		Unit:           string(d.Unit),
		ManualDiscount: d.ManualDiscount,
		BaseAmount:     d.Pricing.BaseAmount,
		DiscountAmount: d.Pricing.DiscountAmount,
		TaxableAmount:  d.Pricing.TaxableAmount,
		TaxAmount:      d.Pricing.TaxAmount,
		NetAmount:      d.Pricing.NetAmount,
		Discounts:      discounts,
	}, nil
}

// ToDomainTransactionLine converts a model row back to a domain TransactionLine
func ToDomainTransactionLine(m models.TransactionLine) (domain.TransactionLine, error) {
	var discounts []domain.AppliedDiscount
	if len(m.Discounts) > 0 {
		if err := json.Unmarshal(m.Discounts, &discounts); err != nil {
			return domain.TransactionLine{}, fmt.Errorf("failed to unmarshal line discounts: %w", err)
		}
	}
	return domain.TransactionLine{
		CartLine: domain.CartLine{
			LineID:         m.LineID,
			ProductID:      m.ProductID,
			CategoryID:     m.CategoryID,
			Quantity:       m.Quantity,
			UnitPrice:      m.UnitPrice,
			Unit:           domain.UnitOfSale(m.Unit),
			ManualDiscount: m.ManualDiscount,
		},
		Pricing: domain.LinePricing{
			LineID:         m.LineID,
			BaseAmount:     m.BaseAmount,
			DiscountAmount: m.DiscountAmount,
			TaxableAmount:  m.TaxableAmount,
			TaxAmount:      m.TaxAmount,
			NetAmount:      m.NetAmount,
			Discounts:      discounts,
		},
	}, nil
}

// ToModelTender converts a domain TenderLine to a model Tender
func ToModelTender(d domain.TenderLine) models.Tender {
	return models.Tender{
		TenderID:      d.TenderID,
		TransactionID: d.TransactionID,
		Kind:          string(d.Kind),
		Amount:        d.Amount,
		Reference:     d.Reference,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTender converts a model Tender to a domain TenderLine
func ToDomainTender(m models.Tender) domain.TenderLine {
	return domain.TenderLine{
		TenderID:      m.TenderID,
		TransactionID: m.TransactionID,
		Kind:          domain.TenderKind(m.Kind),
		Amount:        m.Amount,
		Reference:     m.Reference,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
