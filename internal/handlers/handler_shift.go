package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
	"github.com/Sam231221/AuraSwift-sub015/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shiftHandler handles HTTP requests for cash-drawer shift sessions.
type shiftHandler struct {
	shiftService portssvc.ShiftSvcFacade
}

// newShiftHandler creates a new shiftHandler.
func newShiftHandler(shiftService portssvc.ShiftSvcFacade) *shiftHandler {
	return &shiftHandler{
		shiftService: shiftService,
	}
}

// openShift godoc
// @Summary Open a shift session
// @Description Opens a cash-drawer session for a terminal with the declared opening float
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shift body dto.OpenShiftRequest true "Terminal and opening float"
// @Success 201 {object} dto.ShiftResponse "The opened shift"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Terminal already has an open shift"
// @Failure 500 {object} map[string]string "Failed to open shift"
// @Router /shifts [post]
func (h *shiftHandler) openShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.OpenShiftRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for OpenShift", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shift, err := h.shiftService.OpenShift(c.Request.Context(), cashierID, req)
	if err != nil {
		respondShiftError(c, logger, "open", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToShiftResponse(shift))
}

// getShift godoc
// @Summary Get a shift session
// @Description Retrieves a shift session with its cash movements
// @Tags shifts
// @Produce  json
// @Param   shiftID path string true "Shift ID"
// @Success 200 {object} dto.ShiftResponse "The shift"
// @Failure 404 {object} map[string]string "Shift not found"
// @Failure 500 {object} map[string]string "Failed to retrieve shift"
// @Router /shifts/{shiftID} [get]
func (h *shiftHandler) getShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shiftID := c.Param("shiftID")

	shift, err := h.shiftService.GetShift(c.Request.Context(), shiftID)
	if err != nil {
		respondShiftError(c, logger, "get", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// getOpenShift godoc
// @Summary Get a terminal's open shift
// @Description Retrieves the open shift session for a terminal, if any
// @Tags shifts
// @Produce  json
// @Param   terminalID query string true "Terminal ID"
// @Success 200 {object} dto.ShiftResponse "The open shift"
// @Failure 400 {object} map[string]string "Missing terminal ID"
// @Failure 404 {object} map[string]string "No open shift"
// @Failure 500 {object} map[string]string "Failed to retrieve shift"
// @Router /shifts/open [get]
func (h *shiftHandler) getOpenShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	terminalID := c.Query("terminalID")
	if terminalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "terminalID is required"})
		return
	}

	shift, err := h.shiftService.GetOpenShift(c.Request.Context(), terminalID)
	if err != nil {
		respondShiftError(c, logger, "get open", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// recordMovement godoc
// @Summary Record a cash movement
// @Description Appends a manual paid-in or paid-out movement to an open shift
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shiftID path string true "Shift ID"
// @Param   movement body dto.RecordMovementRequest true "Movement kind, amount and notes"
// @Success 201 {object} dto.CashMovementResponse "The recorded movement"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Shift not found"
// @Failure 409 {object} map[string]string "Shift is closed"
// @Failure 500 {object} map[string]string "Failed to record movement"
// @Router /shifts/{shiftID}/movements [post]
func (h *shiftHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.RecordMovementRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for RecordMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	movement, err := h.shiftService.RecordCashMovement(c.Request.Context(), c.Param("shiftID"), cashierID, req)
	if err != nil {
		respondShiftError(c, logger, "record movement on", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCashMovementResponse(movement))
}

// closeShift godoc
// @Summary Close a shift session
// @Description Reconciles the drawer against the counted cash and freezes the session
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shiftID path string true "Shift ID"
// @Param   close body dto.CloseShiftRequest true "Counted cash"
// @Success 200 {object} dto.ShiftResponse "The closed shift with reconciliation figures"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Shift not found"
// @Failure 409 {object} map[string]string "Shift already closed"
// @Failure 500 {object} map[string]string "Failed to close shift"
// @Router /shifts/{shiftID}/close [post]
func (h *shiftHandler) closeShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CloseShiftRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CloseShift", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shift, err := h.shiftService.CloseShift(c.Request.Context(), c.Param("shiftID"), cashierID, req)
	if err != nil {
		respondShiftError(c, logger, "close", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// respondShiftError maps shift service errors onto HTTP statuses.
func respondShiftError(c *gin.Context, logger *slog.Logger, action string, err error) {
	shiftID := c.Param("shiftID")
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error on shift "+action, slog.String("error", err.Error()), slog.String("shift_id", shiftID))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrShiftAlreadyOpen),
		errors.Is(err, apperrors.ErrShiftClosed),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict on shift "+action, slog.String("error", err.Error()), slog.String("shift_id", shiftID))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" shift", slog.String("error", err.Error()), slog.String("shift_id", shiftID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " shift"})
	}
}

// registerShiftRoutes registers shift routes under the given group.
func registerShiftRoutes(group *gin.RouterGroup, shiftService portssvc.ShiftSvcFacade) {
	h := newShiftHandler(shiftService)
	shifts := group.Group("/shifts")
	shifts.POST("", h.openShift)
	shifts.GET("/open", h.getOpenShift)
	shifts.GET("/:shiftID", h.getShift)
	shifts.POST("/:shiftID/movements", h.recordMovement)
	shifts.POST("/:shiftID/close", h.closeShift)
}
