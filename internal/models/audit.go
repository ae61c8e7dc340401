package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditEntry is a row of the audit_log table.
type AuditEntry struct {
	EntryID     string    `db:"entry_id"`
	EventType   string    `db:"event_type"`
	AggregateID string    `db:"aggregate_id"`
	ActorID     string    `db:"actor_id"`
	Payload     []byte    `db:"payload"`
	OccurredAt  time.Time `db:"occurred_at"`
}

// BankFinancials is the single row of the bank_financials table.
type BankFinancials struct {
	RetainedEarnings decimal.Decimal `db:"retained_earnings"`
	LastUpdatedAt    time.Time       `db:"last_updated_at"`
	LastUpdatedBy    string          `db:"last_updated_by"`
}
