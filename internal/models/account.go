package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	AccountType     string          `db:"account_type"`
	OwnerID         string          `db:"owner_id"`
	Balance         decimal.Decimal `db:"balance"`
	ParentAccountID sql.NullString  `db:"parent_account_id"`
	State           string          `db:"state"`
	IsClosed        bool            `db:"is_closed"`
	CredentialHash  sql.NullString  `db:"credential_hash"`
	AuditFields
}
