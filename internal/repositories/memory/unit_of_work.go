package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
)

// WithinTx runs fn while holding the store lock. Writes are staged and only
// applied when fn returns nil. fn must not call Store methods directly.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repo portsrepo.TxRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &txRepository{
		store:        s,
		accounts:     map[string]domain.Account{},
		transactions: map[string]domain.Transaction{},
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	for id, account := range tx.accounts {
		s.accounts[id] = account
	}
	for id, txn := range tx.transactions {
		s.transactions[id] = txn
	}
	return nil
}

// txRepository reads through staged writes to the locked store.
type txRepository struct {
	store        *Store
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
}

var _ portsrepo.TxRepository = (*txRepository)(nil)

func (r *txRepository) account(id string) (domain.Account, bool) {
	if account, ok := r.accounts[id]; ok {
		return account, true
	}
	account, ok := r.store.accounts[id]
	return account, ok
}

func (r *txRepository) FindAccountsByIDsForUpdate(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	found := make(map[string]domain.Account, len(accountIDs))
	var missing []string
	for _, id := range accountIDs {
		account, ok := r.account(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		found[id] = account
	}
	if len(missing) > 0 {
		return found, fmt.Errorf("%w: could not find accounts %v", apperrors.ErrNotFound, missing)
	}
	return found, nil
}

func (r *txRepository) UpdateAccountsInTx(_ context.Context, accounts ...domain.Account) error {
	for _, account := range accounts {
		if _, ok := r.account(account.AccountID); !ok {
			return fmt.Errorf("%w: account %s not found during update", apperrors.ErrNotFound, account.AccountID)
		}
		r.accounts[account.AccountID] = account
	}
	return nil
}

func (r *txRepository) FindTransactionByIDForUpdate(_ context.Context, transactionID string) (*domain.Transaction, error) {
	if txn, ok := r.transactions[transactionID]; ok {
		return &txn, nil
	}
	txn, ok := r.store.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, transactionID)
	}
	return &txn, nil
}

func (r *txRepository) UpdateTransactionInTx(_ context.Context, txn domain.Transaction) error {
	if _, err := r.FindTransactionByIDForUpdate(context.Background(), txn.TransactionID); err != nil {
		return err
	}
	r.transactions[txn.TransactionID] = txn
	return nil
}
