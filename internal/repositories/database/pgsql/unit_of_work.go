package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork runs work inside a single database transaction.
type PgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(pool *pgxpool.Pool) *PgxUnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// WithinTx commits when fn returns nil and rolls back otherwise.
func (u *PgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repo portsrepo.TxRepository) error) error {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer u.Rollback(ctx, tx)

	if err := fn(ctx, &pgxTxRepository{tx: tx}); err != nil {
		return err
	}
	return u.Commit(ctx, tx)
}

// pgxTxRepository issues its statements on an open transaction.
type pgxTxRepository struct {
	tx pgx.Tx
}

var _ portsrepo.TxRepository = (*pgxTxRepository)(nil)

// FindAccountsByIDsForUpdate locks the rows in account_id order so concurrent
// transfers between the same pair cannot deadlock.
func (r *pgxTxRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := r.tx.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}

	locked := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		locked[a.AccountID] = a
	}
	var missing []string
	for _, id := range ids {
		if _, ok := locked[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return locked, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return locked, nil
}

// UpdateAccountsInTx writes the mutable account columns.
func (r *pgxTxRepository) UpdateAccountsInTx(ctx context.Context, accounts ...domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	query := `
		UPDATE accounts
		SET balance = $2, state = $3, is_closed = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for _, account := range accounts {
		m := mapping.ToModelAccount(account)
		batch.Queue(query, m.AccountID, m.Balance, m.State, m.IsClosed, m.LastUpdatedAt, m.LastUpdatedBy)
	}

	br := r.tx.SendBatch(ctx, batch)
	var batchErr error
	for _, account := range accounts {
		ct, err := br.Exec()
		if err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
		} else if err == nil && ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during update", apperrors.ErrNotFound, account.AccountID)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close account update batch: %w", err)
	}
	return batchErr
}

// FindTransactionByIDForUpdate locks one transaction row.
func (r *pgxTxRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	txn, err := scanTransaction(r.tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// UpdateTransactionInTx writes the status columns of a transaction.
func (r *pgxTxRepository) UpdateTransactionInTx(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	ct, err := r.tx.Exec(ctx, `
		UPDATE transactions
		SET status = $2, approved_by = $3, approved_at = $4, rejection_reason = $5
		WHERE transaction_id = $1;
	`, m.TransactionID, m.Status, m.ApprovedBy, m.ApprovedAt, m.RejectionReason)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, m.TransactionID)
	}
	return nil
}
