package events

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// AuditListener writes every event to the audit repository.
type AuditListener struct {
	repo portsrepo.AuditRepository
}

// NewAuditListener creates an audit listener.
func NewAuditListener(repo portsrepo.AuditRepository) *AuditListener {
	return &AuditListener{repo: repo}
}

func (l *AuditListener) Name() string { return "audit" }

func (l *AuditListener) Handle(ctx context.Context, event domain.Event) error {
	env, err := NewEnvelope(event)
	if err != nil {
		return err
	}
	return l.repo.AppendAuditEntry(ctx, domain.AuditEntry{
		EntryID:     uuid.NewString(),
		EventType:   env.Type,
		AggregateID: env.AggregateID,
		ActorID:     env.ActorID,
		Payload:     env.Payload,
		OccurredAt:  env.OccurredAt,
	})
}
