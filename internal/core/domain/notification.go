package domain

import "time"

// Notification is a message addressed to a user about an event that concerns them.
type Notification struct {
	UserID    string    `json:"userID"`
	EventType EventType `json:"eventType"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
