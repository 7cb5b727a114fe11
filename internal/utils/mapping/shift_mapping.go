package mapping

import (
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/Sam231221/AuraSwift-sub015/internal/models"
)

// ToModelShiftSession converts a domain ShiftSession to a model ShiftSession
func ToModelShiftSession(d domain.ShiftSession) models.ShiftSession {
	m := models.ShiftSession{
		ShiftID:      d.ShiftID,
		BusinessID:   d.BusinessID,
		TerminalID:   d.TerminalID,
		CashierID:    d.CashierID,
		Status:       models.ShiftStatus(d.Status),
		OpeningFloat: d.OpeningFloat,
		CountedCash:  d.CountedCash,
		Variance:     d.Variance,
		OpenedAt:     d.OpenedAt,
		ClosedAt:     d.ClosedAt,
	}
	if d.Status == domain.ShiftClosed {
		expected := d.ExpectedCash
		m.ExpectedCash = &expected
	}
	return m
}

// ToDomainShiftSession converts a model ShiftSession to a domain ShiftSession.
// Movements are loaded and attached separately.
func ToDomainShiftSession(m models.ShiftSession) domain.ShiftSession {
	d := domain.ShiftSession{
		ShiftID:      m.ShiftID,
		BusinessID:   m.BusinessID,
		TerminalID:   m.TerminalID,
		CashierID:    m.CashierID,
		Status:       domain.ShiftStatus(m.Status),
		OpeningFloat: m.OpeningFloat,
		CountedCash:  m.CountedCash,
		Variance:     m.Variance,
		OpenedAt:     m.OpenedAt,
		ClosedAt:     m.ClosedAt,
	}
	if m.ExpectedCash != nil {
		d.ExpectedCash = *m.ExpectedCash
	}
	return d
}

// ToModelCashMovement converts a domain CashMovement to a model CashMovement
func ToModelCashMovement(d domain.CashMovement) models.CashMovement {
	return models.CashMovement{
		MovementID:    d.MovementID,
		ShiftID:       d.ShiftID,
		Kind:          string(d.Kind),
		Amount:        d.Amount,
		TransactionID: d.TransactionID,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainCashMovement converts a model CashMovement to a domain CashMovement
func ToDomainCashMovement(m models.CashMovement) domain.CashMovement {
	return domain.CashMovement{
		MovementID:    m.MovementID,
		ShiftID:       m.ShiftID,
		Kind:          domain.MovementKind(m.Kind),
		Amount:        m.Amount,
		TransactionID: m.TransactionID,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
