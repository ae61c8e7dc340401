package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	TransactionType string          `db:"transaction_type"`
	AccountID       string          `db:"account_id"`
	TargetAccountID sql.NullString  `db:"target_account_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	Status          string          `db:"status"`
	ApprovedBy      sql.NullString  `db:"approved_by"`
	ApprovedAt      sql.NullTime    `db:"approved_at"`
	RejectionReason sql.NullString  `db:"rejection_reason"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}
