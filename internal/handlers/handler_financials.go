package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financialsHandler exposes the bank's retained earnings.
type financialsHandler struct {
	financialsService portssvc.FinancialsSvc
}

func registerFinancialsRoutes(rg *gin.RouterGroup, financialsService portssvc.FinancialsSvc) {
	h := &financialsHandler{financialsService: financialsService}

	financials := rg.Group("/financials")
	{
		financials.GET("/retained-earnings", h.getRetainedEarnings)
		financials.POST("/retained-earnings", h.updateRetainedEarnings)
	}
}

// getRetainedEarnings godoc
// @Summary Get retained earnings
// @Tags financials
// @Produce  json
// @Success 200 {object} dto.RetainedEarningsResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to load retained earnings"
// @Security BearerAuth
// @Router /financials/retained-earnings [get]
func (h *financialsHandler) getRetainedEarnings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	financials, err := h.financialsService.GetRetainedEarnings(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve retained earnings")
		return
	}
	c.JSON(http.StatusOK, dto.ToRetainedEarningsResponse(financials))
}

// updateRetainedEarnings godoc
// @Summary Update retained earnings
// @Description Adds net income less dividends to retained earnings. Admin only.
// @Tags financials
// @Accept  json
// @Produce  json
// @Param   earnings body dto.UpdateRetainedEarningsRequest true "Net income and dividends"
// @Success 200 {object} dto.RetainedEarningsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to update retained earnings"
// @Security BearerAuth
// @Router /financials/retained-earnings [post]
func (h *financialsHandler) updateRetainedEarnings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateRetainedEarningsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRetainedEarnings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	logger.Info("Received retained earnings update",
		slog.String("net_income", req.NetIncome.String()),
		slog.String("dividends", req.Dividends.String()))

	financials, err := h.financialsService.UpdateRetainedEarnings(c.Request.Context(), req.NetIncome, req.Dividends, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update retained earnings")
		return
	}
	c.JSON(http.StatusOK, dto.ToRetainedEarningsResponse(financials))
}
