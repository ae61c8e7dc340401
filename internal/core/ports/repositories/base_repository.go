package repositories

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// TxRepository is the set of locked reads and writes available inside a unit of work.
// Everything written through it commits or rolls back together.
type TxRepository interface {
	// FindAccountsByIDsForUpdate loads and locks the accounts. All ids must exist.
	FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountsInTx persists balance, state and audit fields of the accounts.
	UpdateAccountsInTx(ctx context.Context, accounts ...domain.Account) error

	// FindTransactionByIDForUpdate loads and locks a transaction row.
	FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// UpdateTransactionInTx persists status, approval and rejection fields.
	UpdateTransactionInTx(ctx context.Context, txn domain.Transaction) error
}

// UnitOfWork runs fn atomically. A non-nil error from fn discards every write.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo TxRepository) error) error
}
