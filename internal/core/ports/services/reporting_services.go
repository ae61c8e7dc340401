package services

import (
	"context"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingService defines operations for generating back-office reports
type ReportingService interface {
	// DailyTransactionReport summarises the transactions created on day. Staff only.
	DailyTransactionReport(ctx context.Context, day time.Time, actor domain.Actor) (*domain.DailyTransactionReport, error)

	// AccountSummary returns an account with its most recent transactions.
	AccountSummary(ctx context.Context, accountID string, actor domain.Actor) (*domain.AccountSummary, error)

	// FinancialSummary reports the bank-wide position. Admin only.
	FinancialSummary(ctx context.Context, actor domain.Actor) (*domain.FinancialSummary, error)

	// AuditLog pages through the recorded events. Staff only.
	AuditLog(ctx context.Context, limit int, offset int, actor domain.Actor) ([]domain.AuditEntry, error)
}

// FinancialsSvc manages the bank-level retained earnings aggregate.
type FinancialsSvc interface {
	GetRetainedEarnings(ctx context.Context, actor domain.Actor) (*domain.BankFinancials, error)

	// UpdateRetainedEarnings applies net income less dividends. Admin only.
	UpdateRetainedEarnings(ctx context.Context, netIncome, dividends decimal.Decimal, actor domain.Actor) (*domain.BankFinancials, error)
}
