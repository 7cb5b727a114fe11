package dto

import (
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenShiftRequest opens a cash-drawer session with a declared float.
type OpenShiftRequest struct {
	TerminalID   string          `json:"terminalID" binding:"required"`
	OpeningFloat decimal.Decimal `json:"openingFloat" binding:"required"`
}

// RecordMovementRequest records a manual cash movement against an open shift.
// Amount is always submitted positive; the kind determines the sign.
type RecordMovementRequest struct {
	Kind   string          `json:"kind" binding:"required,oneof=PAID_IN PAID_OUT"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Notes  string          `json:"notes,omitempty"`
}

// CloseShiftRequest closes a session with the physically counted cash.
type CloseShiftRequest struct {
	CountedCash decimal.Decimal `json:"countedCash" binding:"required"`
}

// CashMovementResponse is one entry in the shift's cash ledger.
type CashMovementResponse struct {
	MovementID    string          `json:"movementID"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID *string         `json:"transactionID,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ShiftResponse is the API representation of a shift session.
type ShiftResponse struct {
	ShiftID      string                 `json:"shiftID"`
	TerminalID   string                 `json:"terminalID"`
	CashierID    string                 `json:"cashierID"`
	Status       string                 `json:"status"`
	OpeningFloat decimal.Decimal        `json:"openingFloat"`
	ExpectedCash decimal.Decimal        `json:"expectedCash"`
	CountedCash  *decimal.Decimal       `json:"countedCash,omitempty"`
	Variance     *decimal.Decimal       `json:"variance,omitempty"`
	Movements    []CashMovementResponse `json:"movements,omitempty"`
	OpenedAt     time.Time              `json:"openedAt"`
	ClosedAt     *time.Time             `json:"closedAt,omitempty"`
}

// ToShiftResponse converts a domain shift session to its response DTO.
// For an open session the expected cash is derived live from the ledger;
// closed sessions report the figure frozen at close.
func ToShiftResponse(s *domain.ShiftSession) ShiftResponse {
	expected := s.ExpectedCash
	if s.Status == domain.ShiftOpen {
		expected = s.ComputeExpectedCash()
	}
	resp := ShiftResponse{
		ShiftID:      s.ShiftID,
		TerminalID:   s.TerminalID,
		CashierID:    s.CashierID,
		Status:       string(s.Status),
		OpeningFloat: s.OpeningFloat,
		ExpectedCash: expected,
		CountedCash:  s.CountedCash,
		Variance:     s.Variance,
		OpenedAt:     s.OpenedAt,
		ClosedAt:     s.ClosedAt,
	}
	for _, m := range s.Movements {
		resp.Movements = append(resp.Movements, ToCashMovementResponse(&m))
	}
	return resp
}

// ToCashMovementResponse converts a domain cash movement to its response DTO.
func ToCashMovementResponse(m *domain.CashMovement) CashMovementResponse {
	return CashMovementResponse{
		MovementID:    m.MovementID,
		Kind:          string(m.Kind),
		Amount:        m.Amount,
		TransactionID: m.TransactionID,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
	}
}
