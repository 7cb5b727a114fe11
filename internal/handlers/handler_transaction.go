package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
	"github.com/Sam231221/AuraSwift-sub015/internal/middleware"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/settlement"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for sale transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(transactionService portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: transactionService,
	}
}

// openTransaction godoc
// @Summary Open a sale transaction
// @Description Creates a DRAFT transaction with priced cart lines
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.OpenTransactionRequest true "Terminal and cart lines"
// @Success 201 {object} dto.TransactionResponse "The created transaction"
// @Failure 400 {object} map[string]string "Invalid request format or pricing input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to open transaction"
// @Router /transactions [post]
func (h *transactionHandler) openTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.OpenTransactionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for OpenTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Cashier ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.OpenTransaction(c.Request.Context(), cashierID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidPricingInput) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error opening transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to open transaction in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open transaction"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn, settlement.RemainingDue(txn)))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction with its lines and tenders
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse "The transaction"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction from service", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn, settlement.RemainingDue(txn)))
}

// listTransactions godoc
// @Summary List a terminal's transactions
// @Description Retrieves a paginated list of transactions for a terminal, newest first
// @Tags transactions
// @Produce  json
// @Param   terminalID query string true "Terminal ID"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse "Transactions page"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListTransactionsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// submitTransaction godoc
// @Summary Submit a transaction for payment
// @Description Reserves inventory and moves the transaction DRAFT -> PENDING_PAYMENT
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse "The updated transaction"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Insufficient stock or state conflict"
// @Failure 500 {object} map[string]string "Failed to submit transaction"
// @Router /transactions/{transactionID}/submit [post]
func (h *transactionHandler) submitTransaction(c *gin.Context) {
	h.mutateTransaction(c, "submit", func(c *gin.Context, cashierID string) (interface{}, error) {
		txn, err := h.transactionService.SubmitForPayment(c.Request.Context(), c.Param("transactionID"), cashierID)
		if err != nil {
			return nil, err
		}
		return dto.ToTransactionResponse(txn, settlement.RemainingDue(txn)), nil
	})
}

// addTender godoc
// @Summary Add a tender to a transaction
// @Description Applies a payment instrument to a PENDING_PAYMENT transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   tender body dto.AddTenderRequest true "Tender kind and amount"
// @Success 200 {object} dto.TransactionResponse "The updated transaction"
// @Failure 400 {object} map[string]string "Invalid request format or tender"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "State conflict"
// @Failure 500 {object} map[string]string "Failed to add tender"
// @Router /transactions/{transactionID}/tenders [post]
func (h *transactionHandler) addTender(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.AddTenderRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for AddTender", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	h.mutateTransaction(c, "add tender", func(c *gin.Context, cashierID string) (interface{}, error) {
		txn, err := h.transactionService.AddTender(c.Request.Context(), c.Param("transactionID"), cashierID, req)
		if err != nil {
			return nil, err
		}
		return dto.ToTransactionResponse(txn, settlement.RemainingDue(txn)), nil
	})
}

// finalizeTransaction godoc
// @Summary Finalize a transaction
// @Description Completes the sale once tenders cover the grand total: inventory commit and shift cash delta are applied atomically
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse "The completed transaction"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 402 {object} map[string]string "Payment shortfall"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "State conflict or no open shift"
// @Failure 500 {object} map[string]string "Failed to finalize transaction"
// @Router /transactions/{transactionID}/finalize [post]
func (h *transactionHandler) finalizeTransaction(c *gin.Context) {
	h.mutateTransaction(c, "finalize", func(c *gin.Context, cashierID string) (interface{}, error) {
		txn, err := h.transactionService.FinalizeTransaction(c.Request.Context(), c.Param("transactionID"), cashierID)
		if err != nil {
			return nil, err
		}
		return dto.ToTransactionResponse(txn, settlement.RemainingDue(txn)), nil
	})
}

// voidTransaction godoc
// @Summary Void a transaction
// @Description Cancels a DRAFT or PENDING_PAYMENT transaction, releasing any stock hold
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse "The voided transaction"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "State conflict"
// @Failure 500 {object} map[string]string "Failed to void transaction"
// @Router /transactions/{transactionID}/void [post]
func (h *transactionHandler) voidTransaction(c *gin.Context) {
	h.mutateTransaction(c, "void", func(c *gin.Context, cashierID string) (interface{}, error) {
		txn, err := h.transactionService.VoidTransaction(c.Request.Context(), c.Param("transactionID"), cashierID)
		if err != nil {
			return nil, err
		}
		return dto.ToTransactionResponse(txn, settlement.RemainingDue(txn)), nil
	})
}

// refundTransaction godoc
// @Summary Refund a completed transaction
// @Description Creates a linked reversal transaction, partial or full, returning stock and refunding tenders
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   refund body dto.RefundTransactionRequest true "Lines and tenders to refund"
// @Success 201 {object} dto.TransactionResponse "The reversal transaction"
// @Failure 400 {object} map[string]string "Invalid refund request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "State conflict or no open shift"
// @Failure 500 {object} map[string]string "Failed to refund transaction"
// @Router /transactions/{transactionID}/refund [post]
func (h *transactionHandler) refundTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.RefundTransactionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for RefundTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.transactionService.RefundTransaction(c.Request.Context(), c.Param("transactionID"), cashierID, req)
	if err != nil {
		respondTransactionError(c, logger, "refund", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(reversal, settlement.RemainingDue(reversal)))
}

// mutateTransaction runs a state-changing call with the shared auth check and
// error-to-status mapping.
func (h *transactionHandler) mutateTransaction(c *gin.Context, action string, fn func(c *gin.Context, cashierID string) (interface{}, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := fn(c, cashierID)
	if err != nil {
		respondTransactionError(c, logger, action, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// respondTransactionError maps service errors onto HTTP statuses.
func respondTransactionError(c *gin.Context, logger *slog.Logger, action string, err error) {
	transactionID := c.Param("transactionID")
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrRefundLineUnknown),
		errors.Is(err, services.ErrRefundQtyExceeds),
		errors.Is(err, services.ErrRefundTenderTotals):
		logger.Warn("Validation error on transaction "+action, slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPaymentShortfall):
		logger.Warn("Payment shortfall", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientStock),
		errors.Is(err, apperrors.ErrInvalidStateTransition),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrShiftClosed),
		errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict on transaction "+action, slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " transaction"})
	}
}

// registerTransactionRoutes registers transaction routes under the given group.
func registerTransactionRoutes(group *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)
	txns := group.Group("/transactions")
	txns.POST("", h.openTransaction)
	txns.GET("", h.listTransactions)
	txns.GET("/:transactionID", h.getTransaction)
	txns.POST("/:transactionID/submit", h.submitTransaction)
	txns.POST("/:transactionID/tenders", h.addTender)
	txns.POST("/:transactionID/finalize", h.finalizeTransaction)
	txns.POST("/:transactionID/void", h.voidTransaction)
	txns.POST("/:transactionID/refund", h.refundTransaction)
}
