package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const (
	recentTransactionsLimit = 10
	reportPageSize          = 200
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo    portsrepo.AccountReader
	txnRepo        portsrepo.TransactionReader
	financialsRepo portsrepo.FinancialsRepository
	auditRepo      portsrepo.AuditRepository
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		accountRepo:    repos.AccountRepo,
		txnRepo:        repos.TransactionRepo,
		financialsRepo: repos.FinancialsRepo,
		auditRepo:      repos.AuditRepo,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// DailyTransactionReport summarises the transactions created on the UTC day containing day.
func (s *reportingService) DailyTransactionReport(ctx context.Context, day time.Time, actor domain.Actor) (*domain.DailyTransactionReport, error) {
	if err := domain.RequireStaff(actor); err != nil {
		return nil, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	report := &domain.DailyTransactionReport{
		Date:         start,
		ByType:       map[domain.TransactionType]domain.TypeTotals{},
		ByStatus:     map[domain.TransactionStatus]int{},
		Transactions: []domain.Transaction{},
	}

	filter := portsrepo.TransactionFilter{CreatedFrom: &start, CreatedBefore: &end, Limit: reportPageSize}
	for {
		page, next, err := s.txnRepo.ListTransactions(ctx, filter)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch transactions for daily report", slog.Time("date", start))
			return nil, fmt.Errorf("failed to build daily report: %w", err)
		}
		for _, txn := range page {
			totals := report.ByType[txn.Type]
			totals.Count++
			totals.Amount = totals.Amount.Add(txn.Amount)
			report.ByType[txn.Type] = totals
			report.ByStatus[txn.Status]++
		}
		report.Transactions = append(report.Transactions, page...)
		if next == nil {
			break
		}
		filter.NextToken = next
	}
	report.TotalTransactions = len(report.Transactions)

	s.LogInfo(ctx, "Daily report generated", slog.Time("date", start), slog.Int("transactions", report.TotalTransactions))
	return report, nil
}

// AccountSummary returns the account with its transaction count and latest transactions.
func (s *reportingService) AccountSummary(ctx context.Context, accountID string, actor domain.Actor) (*domain.AccountSummary, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if err := domain.AuthorizeAccountAccess(actor, *account); err != nil {
		return nil, err
	}

	filter := portsrepo.TransactionFilter{AccountID: accountID, Limit: recentTransactionsLimit}
	recent, _, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to build account summary: %w", err)
	}
	count, err := s.txnRepo.CountTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to build account summary: %w", err)
	}

	return &domain.AccountSummary{
		Account:            *account,
		TransactionCount:   count,
		RecentTransactions: recent,
	}, nil
}

// FinancialSummary reports total deposits (positive balances), total loans
// (magnitude of negative balances) and retained earnings.
func (s *reportingService) FinancialSummary(ctx context.Context, actor domain.Actor) (*domain.FinancialSummary, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}

	stats, err := s.accountRepo.AccountStats(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account balances")
		return nil, fmt.Errorf("failed to build financial summary: %w", err)
	}
	financials, err := s.financialsRepo.GetFinancials(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load bank financials")
		return nil, fmt.Errorf("failed to build financial summary: %w", err)
	}

	return &domain.FinancialSummary{
		TotalDeposits:    stats.PositiveBalances,
		TotalLoans:       stats.NegativeBalances.Abs(),
		RetainedEarnings: financials.RetainedEarnings,
		TotalAccounts:    stats.TotalAccounts,
		ActiveAccounts:   stats.ActiveAccounts,
		GeneratedAt:      s.Now(),
	}, nil
}

// AuditLog pages through recorded events, newest first.
func (s *reportingService) AuditLog(ctx context.Context, limit int, offset int, actor domain.Actor) ([]domain.AuditEntry, error) {
	if err := domain.RequireStaff(actor); err != nil {
		return nil, err
	}
	entries, err := s.auditRepo.ListAuditEntries(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries")
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

// financialsService implements the FinancialsSvc interface
type financialsService struct {
	BaseService
	repo portsrepo.FinancialsRepository
}

// NewFinancialsService creates the retained earnings service.
func NewFinancialsService(repo portsrepo.FinancialsRepository, options ...ServiceOption) portssvc.FinancialsSvc {
	svc := &financialsService{repo: repo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.FinancialsSvc = (*financialsService)(nil)

// GetRetainedEarnings returns the current aggregate. Staff only.
func (s *financialsService) GetRetainedEarnings(ctx context.Context, actor domain.Actor) (*domain.BankFinancials, error) {
	if err := domain.RequireStaff(actor); err != nil {
		return nil, err
	}
	f, err := s.repo.GetFinancials(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load bank financials")
		return nil, fmt.Errorf("failed to load retained earnings: %w", err)
	}
	return f, nil
}

// UpdateRetainedEarnings applies netIncome less dividends. Admin only.
func (s *financialsService) UpdateRetainedEarnings(ctx context.Context, netIncome, dividends decimal.Decimal, actor domain.Actor) (*domain.BankFinancials, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if dividends.IsNegative() {
		return nil, fmt.Errorf("%w: dividends cannot be negative", apperrors.ErrValidation)
	}
	if !domain.HasAmountScale(netIncome) || !domain.HasAmountScale(dividends) {
		return nil, fmt.Errorf("%w: amounts are limited to %d decimal places", apperrors.ErrValidation, domain.AmountScale)
	}
	f, err := s.repo.ApplyEarnings(ctx, netIncome, dividends, actor.UserID, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to apply earnings")
		return nil, fmt.Errorf("failed to update retained earnings: %w", err)
	}
	s.LogInfo(ctx, "Retained earnings updated",
		slog.String("net_income", netIncome.String()),
		slog.String("dividends", dividends.String()),
		slog.String("retained_earnings", f.RetainedEarnings.String()))
	return f, nil
}
