package mapping

import (
	"database/sql"
	"encoding/json"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:   d.TransactionID,
		TransactionType: string(d.Type),
		AccountID:       d.AccountID,
		TargetAccountID: nullString(d.TargetAccountID),
		Amount:          d.Amount,
		Description:     d.Description,
		Status:          string(d.Status),
		ApprovedBy:      nullString(d.ApprovedBy),
		RejectionReason: nullString(d.RejectionReason),
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
	if d.ApprovedAt != nil {
		m.ApprovedAt = sql.NullTime{Time: *d.ApprovedAt, Valid: true}
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:   m.TransactionID,
		Type:            domain.TransactionType(m.TransactionType),
		AccountID:       m.AccountID,
		TargetAccountID: m.TargetAccountID.String,
		Amount:          m.Amount,
		Description:     m.Description,
		Status:          domain.TransactionStatus(m.Status),
		ApprovedBy:      m.ApprovedBy.String,
		RejectionReason: m.RejectionReason.String,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
	if m.ApprovedAt.Valid {
		at := m.ApprovedAt.Time
		d.ApprovedAt = &at
	}
	return d
}

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		EntryID:     d.EntryID,
		EventType:   string(d.EventType),
		AggregateID: d.AggregateID,
		ActorID:     d.ActorID,
		Payload:     []byte(d.Payload),
		OccurredAt:  d.OccurredAt,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:     m.EntryID,
		EventType:   domain.EventType(m.EventType),
		AggregateID: m.AggregateID,
		ActorID:     m.ActorID,
		Payload:     json.RawMessage(m.Payload),
		OccurredAt:  m.OccurredAt,
	}
}

// ToDomainFinancials converts the financials row to the domain aggregate.
func ToDomainFinancials(m models.BankFinancials) domain.BankFinancials {
	return domain.BankFinancials{
		RetainedEarnings: m.RetainedEarnings,
		LastUpdatedAt:    m.LastUpdatedAt,
		LastUpdatedBy:    m.LastUpdatedBy,
	}
}
