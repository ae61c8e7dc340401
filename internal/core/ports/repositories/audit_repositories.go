package repositories

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// AuditRepository stores the durable audit trail of domain events.
type AuditRepository interface {
	AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error

	// ListAuditEntries returns entries newest first.
	ListAuditEntries(ctx context.Context, limit int, offset int) ([]domain.AuditEntry, error)
}
