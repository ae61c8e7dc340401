package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// Envelope is the serialised form of an event used by the audit log and the event stream.
type Envelope struct {
	Type        domain.EventType `json:"type"`
	AggregateID string           `json:"aggregateID"`
	ActorID     string           `json:"actorID"`
	OccurredAt  time.Time        `json:"occurredAt"`
	Payload     json.RawMessage  `json:"payload"`
}

// NewEnvelope marshals the event payload.
func NewEnvelope(event domain.Event) (Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s event: %w", event.EventType(), err)
	}
	return Envelope{
		Type:        event.EventType(),
		AggregateID: event.AggregateID(),
		ActorID:     event.ActorID(),
		OccurredAt:  event.OccurredAt(),
		Payload:     payload,
	}, nil
}
