package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice/internal/models"
	"github.com/SscSPs/bank_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// AppendAuditEntry inserts an audit row.
func (r *PgxAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO audit_log (entry_id, event_type, aggregate_id, actor_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, m.EntryID, m.EventType, m.AggregateID, m.ActorID, m.Payload, m.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to append audit entry %s: %w", m.EntryID, err)
	}
	return nil
}

// ListAuditEntries returns audit entries newest first.
func (r *PgxAuditRepository) ListAuditEntries(ctx context.Context, limit int, offset int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT entry_id, event_type, aggregate_id, actor_id, payload, occurred_at
		FROM audit_log
		ORDER BY seq DESC
		LIMIT $1 OFFSET $2;
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		if err := rows.Scan(&m.EntryID, &m.EventType, &m.AggregateID, &m.ActorID, &m.Payload, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		entries = append(entries, mapping.ToDomainAuditEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}
	return entries, nil
}
