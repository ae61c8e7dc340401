package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
)

const defaultNotificationBuffer = 50

// NotificationListener keeps the latest notifications per user in memory.
type NotificationListener struct {
	mu       sync.Mutex
	capacity int
	byUser   map[string][]domain.Notification
}

// NewNotificationListener keeps at most capacity notifications per user.
func NewNotificationListener(capacity int) *NotificationListener {
	if capacity <= 0 {
		capacity = defaultNotificationBuffer
	}
	return &NotificationListener{capacity: capacity, byUser: map[string][]domain.Notification{}}
}

var _ portssvc.NotificationSvc = (*NotificationListener)(nil)

func (l *NotificationListener) Name() string { return "notifications" }

func (l *NotificationListener) Handle(_ context.Context, event domain.Event) error {
	userID, message := describe(event)
	if userID == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	queue := append(l.byUser[userID], domain.Notification{
		UserID:    userID,
		EventType: event.EventType(),
		Message:   message,
		CreatedAt: event.OccurredAt(),
	})
	if len(queue) > l.capacity {
		queue = queue[len(queue)-l.capacity:]
	}
	l.byUser[userID] = queue
	return nil
}

// ListNotifications returns the actor's notifications, newest first.
func (l *NotificationListener) ListNotifications(_ context.Context, actor domain.Actor, limit int) ([]domain.Notification, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	queue := l.byUser[actor.UserID]
	if limit <= 0 || limit > len(queue) {
		limit = len(queue)
	}
	out := make([]domain.Notification, 0, limit)
	for i := len(queue) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, queue[i])
	}
	return out, nil
}

// describe picks the recipient and text for an event. Events without an
// owner to notify return an empty recipient.
func describe(event domain.Event) (string, string) {
	switch e := event.(type) {
	case domain.BalanceChangedEvent:
		return e.OwnerID, fmt.Sprintf("Balance of %s changed by %s to %s", e.AccountID, e.Delta().StringFixed(2), e.NewBalance.StringFixed(2))
	case domain.TransactionCompletedEvent:
		return e.OwnerID, fmt.Sprintf("%s %s of %s completed", e.Transaction.Type, e.Transaction.TransactionID, e.Transaction.Amount.StringFixed(2))
	case domain.TransactionApprovedEvent:
		return e.OwnerID, fmt.Sprintf("Transaction %s approved by %s", e.TransactionID, e.Approver)
	case domain.TransactionRejectedEvent:
		return e.OwnerID, fmt.Sprintf("Transaction %s rejected: %s", e.TransactionID, e.Reason)
	case domain.TransactionPendingEvent:
		return e.OwnerID, fmt.Sprintf("Transaction %s of %s awaits %s approval", e.TransactionID, e.Amount.StringFixed(2), e.RequiredRole.DisplayName())
	case domain.AccountStateChangedEvent:
		if e.From == "" {
			return e.OwnerID, fmt.Sprintf("Account %s opened", e.AccountID)
		}
		return e.OwnerID, fmt.Sprintf("Account %s is now %s", e.AccountID, e.To)
	}
	return "", ""
}
