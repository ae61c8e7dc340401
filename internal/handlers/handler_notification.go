package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type listNotificationsParams struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=200"`
}

type notificationHandler struct {
	notificationService portssvc.NotificationSvc
}

func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvc) {
	h := &notificationHandler{notificationService: notificationService}
	rg.GET("/notifications", h.listNotifications)
}

// listNotifications returns the most recent notifications addressed to the caller.
// @Summary List notifications
// @Tags notifications
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Success 200 {object} map[string][]dto.NotificationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to list notifications"
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params listNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListNotifications", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	actor, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), actor, params.Limit)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": dto.ToNotificationResponses(notifications)})
}
