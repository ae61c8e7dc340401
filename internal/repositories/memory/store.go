// Package memory is a process-local implementation of every repository port.
// One mutex guards the whole store; a unit of work holds it from start to
// commit, so units are serialised and see a consistent snapshot.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const defaultPageSize = 20

// Store holds accounts, transactions, financials and the audit trail in memory.
type Store struct {
	mu           sync.Mutex
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	financials   domain.BankFinancials
	audit        []domain.AuditEntry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     map[string]domain.Account{},
		transactions: map[string]domain.Transaction{},
		financials:   domain.BankFinancials{RetainedEarnings: decimal.Zero},
	}
}

// Provider exposes the store through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     s,
		TransactionRepo: s,
		FinancialsRepo:  s,
		AuditRepo:       s,
		UnitOfWork:      s,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.FinancialsRepository        = (*Store)(nil)
	_ portsrepo.AuditRepository             = (*Store)(nil)
	_ portsrepo.UnitOfWork                  = (*Store)(nil)
)

// SaveAccount inserts a new account.
func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accounts[account.AccountID] = account
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

// FindAccountsByIDs retrieves the accounts that exist among accountIDs.
func (s *Store) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if account, ok := s.accounts[id]; ok {
			found[id] = account
		}
	}
	return found, nil
}

// ListAccounts lists accounts by creation time, optionally for one owner.
func (s *Store) ListAccounts(_ context.Context, ownerID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	s.mu.Lock()
	all := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		if ownerID == "" || account.OwnerID == ownerID {
			all = append(all, account)
		}
	}
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].AccountID < all[j].AccountID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []domain.Account{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// AccountStats aggregates balances and counts.
func (s *Store) AccountStats(_ context.Context) (*domain.AccountStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &domain.AccountStats{PositiveBalances: decimal.Zero, NegativeBalances: decimal.Zero}
	for _, account := range s.accounts {
		stats.TotalAccounts++
		if account.State == domain.StateActive {
			stats.ActiveAccounts++
		}
		if account.Balance.IsPositive() {
			stats.PositiveBalances = stats.PositiveBalances.Add(account.Balance)
		} else if account.Balance.IsNegative() {
			stats.NegativeBalances = stats.NegativeBalances.Add(account.Balance)
		}
	}
	return stats, nil
}

// CreateTransaction inserts a new transaction.
func (s *Store) CreateTransaction(_ context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.transactions[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
	}
	s.transactions[txn.TransactionID] = txn
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func matches(txn domain.Transaction, filter portsrepo.TransactionFilter) bool {
	if filter.AccountID != "" && txn.AccountID != filter.AccountID && txn.TargetAccountID != filter.AccountID {
		return false
	}
	if filter.Status != "" && txn.Status != filter.Status {
		return false
	}
	if filter.CreatedFrom != nil && txn.CreatedAt.Before(*filter.CreatedFrom) {
		return false
	}
	if filter.CreatedBefore != nil && !txn.CreatedAt.Before(*filter.CreatedBefore) {
		return false
	}
	return true
}

// ListTransactions returns matching transactions newest first.
func (s *Store) ListTransactions(_ context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	var cursor *pagination.Cursor
	if filter.NextToken != nil && *filter.NextToken != "" {
		c, err := pagination.DecodeCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	s.mu.Lock()
	selected := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if !matches(txn, filter) {
			continue
		}
		if cursor != nil && !cursor.Before(txn.CreatedAt, txn.TransactionID) {
			continue
		}
		selected = append(selected, txn)
	}
	s.mu.Unlock()

	sort.Slice(selected, func(i, j int) bool {
		if selected[i].CreatedAt.Equal(selected[j].CreatedAt) {
			return selected[i].TransactionID > selected[j].TransactionID
		}
		return selected[i].CreatedAt.After(selected[j].CreatedAt)
	})

	if len(selected) <= limit {
		return selected, nil, nil
	}
	page := selected[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
	return page, &token, nil
}

// CountTransactions counts matching transactions.
func (s *Store) CountTransactions(_ context.Context, filter portsrepo.TransactionFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, txn := range s.transactions {
		if matches(txn, filter) {
			count++
		}
	}
	return count, nil
}

// GetFinancials returns the bank financials aggregate.
func (s *Store) GetFinancials(_ context.Context) (*domain.BankFinancials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.financials
	return &f, nil
}

// ApplyEarnings adds netIncome less dividends to retained earnings.
func (s *Store) ApplyEarnings(_ context.Context, netIncome, dividends decimal.Decimal, userID string, now time.Time) (*domain.BankFinancials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.financials.ApplyEarnings(netIncome, dividends, userID, now)
	f := s.financials
	return &f, nil
}

// AppendAuditEntry records an audit entry.
func (s *Store) AppendAuditEntry(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

// ListAuditEntries returns audit entries newest first.
func (s *Store) ListAuditEntries(_ context.Context, limit int, offset int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.AuditEntry, 0, limit)
	for i := len(s.audit) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.audit[i])
	}
	return out, nil
}
