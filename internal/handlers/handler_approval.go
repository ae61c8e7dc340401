package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// approvalHandler lets staff resolve transactions waiting for manual approval.
type approvalHandler struct {
	approverService portssvc.TransactionApproverSvc
}

func registerApprovalRoutes(rg *gin.RouterGroup, approverService portssvc.TransactionApproverSvc) {
	h := &approvalHandler{approverService: approverService}

	approvals := rg.Group("/approvals")
	{
		approvals.GET("/pending", h.listPending)
		approvals.POST("/:id/approve", h.approve)
		approvals.POST("/:id/deny", h.deny)
	}
}

// listPending godoc
// @Summary List pending approvals
// @Description Lists the pending transactions the caller may approve or deny
// @Tags approvals
// @Produce  json
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 500 {object} map[string]string "Failed to list pending approvals"
// @Security BearerAuth
// @Router /approvals/pending [get]
func (h *approvalHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	pending, err := h.approverService.ListPendingApprovals(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list pending approvals")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(pending)})
}

// approve godoc
// @Summary Approve a pending transaction
// @Tags approvals
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Forbidden (insufficient authority)"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Transaction not pending or failed to execute"
// @Security BearerAuth
// @Router /approvals/{id}/approve [post]
func (h *approvalHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")
	actor, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID))
	logger.Info("Received request to approve transaction")

	txn, err := h.approverService.ApproveTransaction(c.Request.Context(), transactionID, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to approve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deny godoc
// @Summary Deny a pending transaction
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   reason body dto.DenyTransactionRequest false "Denial reason"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Forbidden (insufficient authority)"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Transaction not pending"
// @Security BearerAuth
// @Router /approvals/{id}/deny [post]
func (h *approvalHandler) deny(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	// The body is optional; an empty one falls back to the default reason.
	var req dto.DenyTransactionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for DenyTransaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}
	actor, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID))
	logger.Info("Received request to deny transaction")

	txn, err := h.approverService.DenyTransaction(c.Request.Context(), transactionID, req.Reason, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to deny transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
