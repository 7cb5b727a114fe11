package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
	"github.com/Sam231221/AuraSwift-sub015/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pricingHandler handles HTTP requests for cart pricing.
type pricingHandler struct {
	pricingService portssvc.PricingSvcFacade
}

// newPricingHandler creates a new pricingHandler.
func newPricingHandler(pricingService portssvc.PricingSvcFacade) *pricingHandler {
	return &pricingHandler{
		pricingService: pricingService,
	}
}

// priceCart godoc
// @Summary Price a cart
// @Description Resolves discounts and taxes for a cart without touching any state. Safe to call repeatedly while the cashier edits the cart.
// @Tags pricing
// @Accept  json
// @Produce  json
// @Param   cart body dto.PriceCartRequest true "Cart lines to price"
// @Success 200 {object} dto.PricingResponse "Resolved pricing"
// @Failure 400 {object} map[string]string "Invalid request format or pricing input"
// @Failure 500 {object} map[string]string "Failed to price cart"
// @Router /cart/price [post]
func (h *pricingHandler) priceCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.PriceCartRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for PriceCart", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	pricing, lines, err := h.pricingService.PriceCart(c.Request.Context(), req, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidPricingInput) {
			logger.Warn("Invalid pricing input", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to price cart in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price cart"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPricingResponse(pricing, lines))
}

// registerPricingRoutes registers pricing routes under the given group.
func registerPricingRoutes(group *gin.RouterGroup, pricingService portssvc.PricingSvcFacade) {
	h := newPricingHandler(pricingService)
	cart := group.Group("/cart")
	cart.POST("/price", h.priceCart)
}
