package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// TransactionFilter narrows a transaction listing. Zero values mean no restriction.
type TransactionFilter struct {
	// AccountID matches either side of a transfer.
	AccountID     string
	Status        domain.TransactionStatus
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
	Limit         int
	NextToken     *string
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns transactions newest first, plus a token for the next page.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, *string, error)

	// CountTransactions counts transactions matching the filter, ignoring paging fields.
	CountTransactions(ctx context.Context, filter TransactionFilter) (int, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// CreateTransaction persists a new transaction.
	CreateTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
