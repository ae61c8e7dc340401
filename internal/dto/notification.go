package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// NotificationResponse is one notification delivered to a user.
type NotificationResponse struct {
	EventType domain.EventType `json:"eventType"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ToNotificationResponses converts notifications for the API, newest first as given.
func ToNotificationResponses(ns []domain.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		res[i] = NotificationResponse{EventType: n.EventType, Message: n.Message, CreatedAt: n.CreatedAt}
	}
	return res
}
