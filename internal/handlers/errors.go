package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/core/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto a status code and writes it.
// Unknown errors are logged and reported as fallbackMsg with a 500.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var failed *services.TransactionFailedError
	if errors.As(err, &failed) {
		logger.Warn("Transaction rejected at execution", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       err.Error(),
			"transaction": dto.ToTransactionResponse(&failed.Transaction),
		})
		return
	}

	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallbackMsg})
		return
	}
	logger.Warn("Request failed", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorizedAccess):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrFrozenAccount),
		errors.Is(err, apperrors.ErrInvalidTransaction),
		errors.Is(err, apperrors.ErrInvalidStateTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// actorOrAbort fetches the authenticated actor, writing a 401 when it is missing.
func actorOrAbort(c *gin.Context, logger *slog.Logger) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}
