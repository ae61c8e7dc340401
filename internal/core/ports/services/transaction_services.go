package services

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionExecutorSvc accepts money movements and routes them through approval.
type TransactionExecutorSvc interface {
	// Deposit credits an account. No ownership check applies.
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Transaction, error)

	// Withdraw debits an account the actor may act on.
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Transaction, error)

	// Transfer moves funds between two accounts as one atomic unit.
	Transfer(ctx context.Context, sourceAccountID, targetAccountID string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Transaction, error)
}

// TransactionApproverSvc resolves transactions waiting for manual approval.
type TransactionApproverSvc interface {
	ApproveTransaction(ctx context.Context, transactionID string, actor domain.Actor) (*domain.Transaction, error)
	DenyTransaction(ctx context.Context, transactionID string, reason string, actor domain.Actor) (*domain.Transaction, error)

	// ListPendingApprovals returns the pending transactions the actor may decide on.
	ListPendingApprovals(ctx context.Context, actor domain.Actor) ([]domain.Transaction, error)
}

// TransactionReaderSvc defines read operations for transactions.
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, transactionID string, actor domain.Actor) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams, actor domain.Actor) (*dto.ListTransactionsResponse, error)
	ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams, actor domain.Actor) (*dto.ListTransactionsResponse, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionExecutorSvc
	TransactionApproverSvc
	TransactionReaderSvc
}
