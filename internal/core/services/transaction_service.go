package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
	"github.com/Sam231221/AuraSwift-sub015/internal/middleware"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/money"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/settlement"
	"github.com/shopspring/decimal"
)

var (
	ErrRefundLineUnknown  = errors.New("refund references a line not on the original transaction")
	ErrRefundQtyExceeds   = errors.New("refund quantity exceeds the originally sold quantity")
	ErrRefundTenderTotals = errors.New("refund tenders do not sum to the refunded amount")
)

// transactionService drives the sale state machine: pricing, reservation,
// settlement, completion, void and refund. Each transaction is owned by one
// terminal until completion, so no cross-terminal locking happens here; the
// inventory repository serializes the shared stock counters.
type transactionService struct {
	txnRepo       portsrepo.TransactionRepositoryFacade
	inventoryRepo portsrepo.InventoryRepositoryFacade
	shiftRepo     portsrepo.ShiftRepositoryFacade
	pricingSvc    portssvc.PricingSvcFacade
	businessID    string
	precision     int32
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	shiftRepo portsrepo.ShiftRepositoryFacade,
	pricingSvc portssvc.PricingSvcFacade,
	businessID string,
	precision int32,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:       txnRepo,
		inventoryRepo: inventoryRepo,
		shiftRepo:     shiftRepo,
		pricingSvc:    pricingSvc,
		businessID:    businessID,
		precision:     precision,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// OpenTransaction creates a DRAFT transaction with priced cart lines.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) OpenTransaction(ctx context.Context, cashierID string, req dto.OpenTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	lines := make([]domain.CartLine, len(req.Lines))
	for i, lr := range req.Lines {
		lines[i] = domain.CartLine{
			LineID:         uuid.NewString(),
			ProductID:      lr.ProductID,
			Quantity:       lr.Quantity,
			Unit:           domain.UnitOfSale(lr.Unit),
			ManualDiscount: lr.ManualDiscount,
		}
		if lr.Unit == "" {
			lines[i].Unit = domain.UnitEach
		}
		if lr.UnitPrice != nil {
			lines[i].UnitPrice = *lr.UnitPrice
			lines[i].PriceOverridden = true
		}
	}

	pricing, err := s.pricingSvc.PriceLines(ctx, lines, now)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		BusinessID:    s.businessID,
		TerminalID:    req.TerminalID,
		CashierID:     cashierID,
		Status:        domain.StatusDraft,
		Lines:         make([]domain.TransactionLine, len(lines)),
		Subtotal:      pricing.Subtotal,
		TotalDiscount: pricing.TotalDiscount,
		TotalTax:      pricing.TotalTax,
		GrandTotal:    pricing.GrandTotal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     cashierID,
			LastUpdatedAt: now,
			LastUpdatedBy: cashierID,
		},
	}
	for i, line := range lines {
		txn.Lines[i] = domain.TransactionLine{CartLine: line, Pricing: pricing.Lines[i]}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save draft transaction", "error", err)
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction opened", "transaction_id", txn.TransactionID, "terminal_id", txn.TerminalID, "grand_total", txn.GrandTotal.String())
	return &txn, nil
}

// SubmitForPayment reserves inventory and moves DRAFT -> PENDING_PAYMENT.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) SubmitForPayment(ctx context.Context, transactionID string, cashierID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Status.CanTransitionTo(domain.StatusPendingPayment) {
		return nil, fmt.Errorf("%w: cannot submit transaction in status %s", apperrors.ErrInvalidStateTransition, txn.Status)
	}

	// One delta per product; a cart may hold the same product on several lines.
	if err := s.inventoryRepo.Reserve(ctx, transactionID, aggregateDeltas(txn.Lines)); err != nil {
		// InsufficientStock leaves the transaction in DRAFT.
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, domain.StatusDraft, domain.StatusPendingPayment, cashierID, now); err != nil {
		// Undo the hold rather than leaking it against a transaction that
		// never reached pending payment.
		if relErr := s.inventoryRepo.Release(ctx, transactionID); relErr != nil {
			logger.Error("Failed to release reservation after status conflict", "transaction_id", transactionID, "error", relErr)
		}
		return nil, err
	}

	txn.Status = domain.StatusPendingPayment
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = cashierID
	logger.Info("Transaction submitted for payment", "transaction_id", transactionID)
	return txn, nil
}

// AddTender appends a tender line while the transaction awaits payment.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) AddTender(ctx context.Context, transactionID string, cashierID string, req dto.AddTenderRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := settlement.ValidateTender(txn, req.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tender := domain.TenderLine{
		TenderID:      uuid.NewString(),
		TransactionID: transactionID,
		Kind:          domain.TenderKind(req.Kind),
		Amount:        req.Amount,
		Reference:     req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     cashierID,
			LastUpdatedAt: now,
			LastUpdatedBy: cashierID,
		},
	}
	if err := s.txnRepo.SaveTenderLine(ctx, tender); err != nil {
		logger.Error("Failed to save tender line", "transaction_id", transactionID, "error", err)
		return nil, fmt.Errorf("failed to save tender: %w", err)
	}

	txn.Tenders = append(txn.Tenders, tender)
	logger.Info("Tender added", "transaction_id", transactionID, "kind", req.Kind, "amount", req.Amount.String(), "remaining_due", settlement.RemainingDue(txn).String())
	return txn, nil
}

// FinalizeTransaction completes the sale as one atomic unit: state change,
// inventory commit and the shift cash delta. A conflict during the atomic
// apply leaves the transaction PENDING_PAYMENT with its tenders preserved.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) FinalizeTransaction(ctx context.Context, transactionID string, cashierID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Status.CanTransitionTo(domain.StatusCompleted) {
		return nil, fmt.Errorf("%w: cannot finalize transaction in status %s", apperrors.ErrInvalidStateTransition, txn.Status)
	}

	remaining := settlement.RemainingDue(txn)
	if remaining.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s still due", apperrors.ErrPaymentShortfall, remaining.String())
	}

	now := time.Now().UTC()
	txn.Status = domain.StatusCompleted
	txn.AmountTendered = domain.SumTenders(txn.Tenders)
	txn.ChangeDue = settlement.ChangeDue(txn)
	txn.CompletedAt = &now
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = cashierID

	// Cash sales report their net drawer impact into the open shift.
	var movement *domain.CashMovement
	netCash := settlement.NetCashDelta(txn)
	if txn.CashTendered().GreaterThan(decimal.Zero) && !netCash.IsZero() {
		shift, err := s.shiftRepo.FindOpenShiftByTerminal(ctx, txn.TerminalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no open shift for terminal %s", apperrors.ErrShiftClosed, txn.TerminalID)
			}
			return nil, fmt.Errorf("failed to find open shift: %w", err)
		}
		movement = &domain.CashMovement{
			MovementID:    uuid.NewString(),
			ShiftID:       shift.ShiftID,
			Kind:          domain.MovementSale,
			Amount:        netCash,
			TransactionID: &txn.TransactionID,
			CreatedAt:     now,
			CreatedBy:     cashierID,
		}
	}

	if err := s.txnRepo.CompleteTransaction(ctx, *txn, movement); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// The cash delta was already delivered for this transaction;
			// duplicate delivery must not double-count the drawer.
			logger.Warn("Cash delta already delivered for transaction", "transaction_id", transactionID)
			return nil, fmt.Errorf("%w: cash delta already recorded", apperrors.ErrConflict)
		}
		logger.Error("Failed to complete transaction", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	logger.Info("Transaction completed",
		"transaction_id", transactionID,
		"grand_total", txn.GrandTotal.String(),
		"change_due", txn.ChangeDue.String(),
	)
	return txn, nil
}

// VoidTransaction cancels a DRAFT or PENDING_PAYMENT transaction.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) VoidTransaction(ctx context.Context, transactionID string, cashierID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Status.CanTransitionTo(domain.StatusVoided) {
		return nil, fmt.Errorf("%w: cannot void transaction in status %s", apperrors.ErrInvalidStateTransition, txn.Status)
	}

	// A pending transaction holds a reservation; return it before the state
	// moves so availability is restored exactly.
	if txn.Status == domain.StatusPendingPayment {
		if err := s.inventoryRepo.Release(ctx, transactionID); err != nil {
			logger.Error("Failed to release reservation on void", "transaction_id", transactionID, "error", err)
			return nil, fmt.Errorf("failed to release reservation: %w", err)
		}
	}

	now := time.Now().UTC()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, txn.Status, domain.StatusVoided, cashierID, now); err != nil {
		return nil, err
	}

	txn.Status = domain.StatusVoided
	txn.VoidedAt = &now
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = cashierID
	logger.Info("Transaction voided", "transaction_id", transactionID)
	return txn, nil
}

// RefundTransaction creates a linked reversal for a completed transaction.
// The original record is never mutated beyond its status and reversal link.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) RefundTransaction(ctx context.Context, transactionID string, cashierID string, req dto.RefundTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !original.Status.CanTransitionTo(domain.StatusRefunded) {
		return nil, fmt.Errorf("%w: cannot refund transaction in status %s", apperrors.ErrInvalidStateTransition, original.Status)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: cannot refund a reversal transaction", apperrors.ErrValidation)
	}

	refundLines, returns, err := s.buildRefundLines(original, req.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversal := domain.Transaction{
		TransactionID:         reversalID,
		BusinessID:            original.BusinessID,
		TerminalID:            original.TerminalID,
		CashierID:             cashierID,
		Status:                domain.StatusCompleted,
		Lines:                 refundLines,
		OriginalTransactionID: &original.TransactionID,
		CompletedAt:           &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     cashierID,
			LastUpdatedAt: now,
			LastUpdatedBy: cashierID,
		},
	}

	// Reversal lines carry the refunded quantities and pricing as positives;
	// the transaction-level totals and tenders are negated so the reversal
	// books money flowing back out.
	sub, disc, tax := decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range refundLines {
		sub = sub.Add(l.Pricing.BaseAmount)
		disc = disc.Add(l.Pricing.DiscountAmount)
		// Added tax only; embedded tax never left the base amount.
		if l.Pricing.NetAmount.GreaterThan(l.Pricing.TaxableAmount) {
			tax = tax.Add(l.Pricing.TaxAmount)
		}
	}
	refundTotal := money.Round(sub.Sub(disc).Add(tax), s.precision)
	reversal.Subtotal = sub.Neg()
	reversal.TotalDiscount = disc.Neg()
	reversal.TotalTax = tax.Neg()
	reversal.GrandTotal = refundTotal.Neg()

	refundTenders := make([]domain.TenderLine, len(req.Tenders))
	tenderSum := decimal.Zero
	for i, tr := range req.Tenders {
		if tr.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: refund tender amount must be positive", apperrors.ErrValidation)
		}
		tenderSum = tenderSum.Add(tr.Amount)
		refundTenders[i] = domain.TenderLine{
			TenderID:      uuid.NewString(),
			TransactionID: reversalID,
			Kind:          domain.TenderKind(tr.Kind),
			Amount:        tr.Amount.Neg(),
			Reference:     tr.Reference,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     cashierID,
				LastUpdatedAt: now,
				LastUpdatedBy: cashierID,
			},
		}
	}
	if !tenderSum.Equal(refundTotal) {
		return nil, fmt.Errorf("%w: tendered %s, refunding %s", ErrRefundTenderTotals, tenderSum.String(), refundTotal.String())
	}
	if err := settlement.ValidateRefundTenders(original, refundTenders); err != nil {
		return nil, err
	}
	reversal.Tenders = refundTenders
	reversal.AmountTendered = tenderSum.Neg()

	// Cash refunds drain the drawer of the open shift.
	var movement *domain.CashMovement
	cashRefund := decimal.Zero
	for _, t := range refundTenders {
		if t.Kind == domain.TenderCash {
			cashRefund = cashRefund.Add(t.Amount.Abs())
		}
	}
	if cashRefund.GreaterThan(decimal.Zero) {
		shift, err := s.shiftRepo.FindOpenShiftByTerminal(ctx, original.TerminalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no open shift for terminal %s", apperrors.ErrShiftClosed, original.TerminalID)
			}
			return nil, fmt.Errorf("failed to find open shift: %w", err)
		}
		movement = &domain.CashMovement{
			MovementID:    uuid.NewString(),
			ShiftID:       shift.ShiftID,
			Kind:          domain.MovementRefund,
			Amount:        cashRefund.Neg(),
			TransactionID: &reversalID,
			CreatedAt:     now,
			CreatedBy:     cashierID,
		}
	}

	if err := s.txnRepo.SaveReversal(ctx, reversal, original.TransactionID, returns, movement); err != nil {
		logger.Error("Failed to save refund reversal", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	logger.Info("Transaction refunded",
		"transaction_id", transactionID,
		"reversal_id", reversalID,
		"refund_total", refundTotal.String(),
	)
	return &reversal, nil
}

// GetTransaction retrieves a transaction with lines and tenders.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactions retrieves a paginated list of a terminal's transactions.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByTerminal(ctx, params.TerminalID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		resp.Transactions[i] = dto.ToTransactionResponse(&txns[i], settlement.RemainingDue(&txns[i]))
	}

	logger.Info("Transactions listed successfully", "count", len(txns))
	return resp, nil
}

// buildRefundLines resolves the requested refund lines against the original
// transaction, pro-rating pricing for partial quantities. An empty request
// refunds every line in full.
func (s *transactionService) buildRefundLines(original *domain.Transaction, reqLines []dto.RefundLineRequest) ([]domain.TransactionLine, []domain.StockDelta, error) {
	byLineID := make(map[string]domain.TransactionLine, len(original.Lines))
	for _, l := range original.Lines {
		byLineID[l.LineID] = l
	}

	if len(reqLines) == 0 {
		reqLines = make([]dto.RefundLineRequest, 0, len(original.Lines))
		for _, l := range original.Lines {
			reqLines = append(reqLines, dto.RefundLineRequest{LineID: l.LineID, Quantity: l.Quantity})
		}
	}

	refundLines := make([]domain.TransactionLine, 0, len(reqLines))
	returns := make([]domain.StockDelta, 0, len(reqLines))
	for _, rl := range reqLines {
		origLine, found := byLineID[rl.LineID]
		if !found {
			return nil, nil, fmt.Errorf("%w: line %s", ErrRefundLineUnknown, rl.LineID)
		}
		if rl.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, nil, fmt.Errorf("%w: refund quantity must be positive for line %s", apperrors.ErrValidation, rl.LineID)
		}
		if rl.Quantity.GreaterThan(origLine.Quantity) {
			return nil, nil, fmt.Errorf("%w: line %s", ErrRefundQtyExceeds, rl.LineID)
		}

		line := origLine
		line.Quantity = rl.Quantity
		line.Pricing = scaleLinePricing(origLine.Pricing, rl.Quantity, origLine.Quantity, s.precision)
		refundLines = append(refundLines, line)
		returns = append(returns, domain.StockDelta{ProductID: origLine.ProductID, Quantity: rl.Quantity})
	}
	return refundLines, returns, nil
}

// scaleLinePricing pro-rates a line's pricing to a refunded quantity. A full
// quantity returns the original values exactly; partial quantities scale each
// component and re-derive the dependent amounts, rounding money at currency
// precision.
func scaleLinePricing(lp domain.LinePricing, qty, origQty decimal.Decimal, precision int32) domain.LinePricing {
	if qty.Equal(origQty) {
		return lp
	}
	ratio := qty.Div(origQty)
	inclusive := lp.NetAmount.Equal(lp.TaxableAmount)

	scaled := domain.LinePricing{
		LineID:         lp.LineID,
		BaseAmount:     money.Round(lp.BaseAmount.Mul(ratio), precision),
		DiscountAmount: money.Round(lp.DiscountAmount.Mul(ratio), precision),
		TaxAmount:      money.Round(lp.TaxAmount.Mul(ratio), precision),
	}
	scaled.TaxableAmount = scaled.BaseAmount.Sub(scaled.DiscountAmount)
	if inclusive {
		scaled.NetAmount = scaled.TaxableAmount
	} else {
		scaled.NetAmount = scaled.TaxableAmount.Add(scaled.TaxAmount)
	}
	return scaled
}

// aggregateDeltas folds transaction lines into one stock delta per product.
func aggregateDeltas(lines []domain.TransactionLine) []domain.StockDelta {
	totals := make(map[string]decimal.Decimal, len(lines))
	order := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, seen := totals[l.ProductID]; !seen {
			order = append(order, l.ProductID)
		}
		totals[l.ProductID] = totals[l.ProductID].Add(l.Quantity)
	}
	deltas := make([]domain.StockDelta, 0, len(order))
	for _, productID := range order {
		deltas = append(deltas, domain.StockDelta{ProductID: productID, Quantity: totals[productID]})
	}
	return deltas
}
