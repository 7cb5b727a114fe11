// Package settlement holds the tender arithmetic shared by services and
// handlers so every component settles a transaction the same way.
package settlement

import (
	"fmt"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/money"
	"github.com/shopspring/decimal"
)

// RemainingDue is the grand total minus the sum of tenders, floored at zero.
func RemainingDue(t *domain.Transaction) decimal.Decimal {
	return money.FloorZero(t.GrandTotal.Sub(domain.SumTenders(t.Tenders)))
}

// ChangeDue is the cash handed back to the customer: cash tendered minus the
// portion of the grand total not covered by non-cash tenders. Never negative,
// and only meaningful once RemainingDue is zero.
func ChangeDue(t *domain.Transaction) decimal.Decimal {
	cash := decimal.Zero
	nonCash := decimal.Zero
	for _, tender := range t.Tenders {
		if tender.Kind == domain.TenderCash {
			cash = cash.Add(tender.Amount)
		} else {
			nonCash = nonCash.Add(tender.Amount)
		}
	}
	return money.FloorZero(cash.Sub(money.FloorZero(t.GrandTotal.Sub(nonCash))))
}

// NetCashDelta is the drawer impact of a completed sale: cash tendered minus
// cash change returned.
func NetCashDelta(t *domain.Transaction) decimal.Decimal {
	return t.CashTendered().Sub(ChangeDue(t))
}

// ValidateTender checks a tender addition against the transaction's state.
// Amounts must be positive and tenders may only be added while the
// transaction is awaiting payment.
func ValidateTender(t *domain.Transaction, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: tender amount must be positive", apperrors.ErrValidation)
	}
	if t.Status != domain.StatusPendingPayment {
		return fmt.Errorf("%w: cannot add tender while transaction is %s", apperrors.ErrInvalidStateTransition, t.Status)
	}
	return nil
}

// ValidateRefundTenders checks that a refund does not pay back more per
// payment method than was originally tendered with that method.
func ValidateRefundTenders(original *domain.Transaction, refunds []domain.TenderLine) error {
	tendered := domain.SumTendersByKind(original.Tenders)
	refunded := make(map[domain.TenderKind]decimal.Decimal)
	for _, r := range refunds {
		amount := r.Amount.Abs()
		refunded[r.Kind] = refunded[r.Kind].Add(amount)
		if refunded[r.Kind].GreaterThan(tendered[r.Kind]) {
			return fmt.Errorf("%w: refund via %s exceeds originally tendered amount", apperrors.ErrValidation, r.Kind)
		}
	}
	return nil
}
