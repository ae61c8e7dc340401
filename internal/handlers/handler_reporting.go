package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for back-office reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/daily", h.getDailyReport)
		reportingGroup.GET("/accounts/:id", h.getAccountSummary)
		reportingGroup.GET("/financial-summary", h.getFinancialSummary)
		reportingGroup.GET("/audit-log", h.getAuditLog)
	}
}

// getDailyReport summarises the transactions of one UTC day, today by default.
// @Summary Generate daily transaction report
// @Tags reports
// @Produce json
// @Param date query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.DailyReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/daily [get]
func (h *reportingHandler) getDailyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DailyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for DailyReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	actor, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	day := time.Now().UTC()
	if params.Date != "" {
		parsed, err := time.Parse("2006-01-02", params.Date)
		if err != nil {
			logger.Warn("Invalid date format", slog.String("date", params.Date))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	logger.Info("Generating daily transaction report", slog.String("date", day.Format("2006-01-02")))
	report, err := h.reportingService.DailyTransactionReport(c.Request.Context(), day, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate daily report")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyReportResponse(report))
}

// getAccountSummary godoc
// @Summary Generate account summary
// @Tags reports
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountSummaryResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/accounts/{id} [get]
func (h *reportingHandler) getAccountSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")
	actor, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("target_account_id", accountID))
	summary, err := h.reportingService.AccountSummary(c.Request.Context(), accountID, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate account summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountSummaryResponse(summary))
}

// getFinancialSummary godoc
// @Summary Generate bank financial summary
// @Description Totals assets, liabilities and retained earnings. Admin only.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.FinancialSummaryResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/financial-summary [get]
func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	summary, err := h.reportingService.FinancialSummary(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate financial summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(summary))
}

// getAuditLog godoc
// @Summary List audit log entries
// @Tags reports
// @Produce json
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.AuditLogResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to load audit log"
// @Security BearerAuth
// @Router /reports/audit-log [get]
func (h *reportingHandler) getAuditLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.AuditLogParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for AuditLog", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	actor, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	entries, err := h.reportingService.AuditLog(c.Request.Context(), params.Limit, params.Offset, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to read audit log")
		return
	}
	c.JSON(http.StatusOK, dto.AuditLogResponse{Entries: entries})
}
