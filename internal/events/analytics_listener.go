package events

import (
	"context"
	"strings"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// analyticsClient is satisfied by utils.PosthogClientWrapper.
type analyticsClient interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// AnalyticsListener forwards domain events to product analytics.
type AnalyticsListener struct {
	client analyticsClient
}

// NewAnalyticsListener creates an analytics listener.
func NewAnalyticsListener(client analyticsClient) *AnalyticsListener {
	return &AnalyticsListener{client: client}
}

func (l *AnalyticsListener) Name() string { return "analytics" }

func (l *AnalyticsListener) Handle(_ context.Context, event domain.Event) error {
	if l.client == nil || !l.client.IsInitialized() {
		return nil
	}
	props := map[string]any{"aggregate_id": event.AggregateID()}
	switch e := event.(type) {
	case domain.TransactionCompletedEvent:
		props["transaction_type"] = string(e.Transaction.Type)
		props["amount"] = e.Transaction.Amount.InexactFloat64()
		props["approved_by"] = e.Transaction.ApprovedBy
	case domain.TransactionPendingEvent:
		props["amount"] = e.Amount.InexactFloat64()
		props["required_role"] = string(e.RequiredRole)
	case domain.TransactionRejectedEvent:
		props["reason"] = e.Reason
	case domain.AccountStateChangedEvent:
		props["from"] = string(e.From)
		props["to"] = string(e.To)
	case domain.BalanceChangedEvent:
		// Balances are not sent to analytics.
		return nil
	}
	l.client.Enqueue(event.ActorID(), "backoffice_"+strings.ToLower(string(event.EventType())), props)
	return nil
}
