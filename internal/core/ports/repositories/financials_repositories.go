package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinancialsRepository persists the bank-level financial aggregate.
type FinancialsRepository interface {
	GetFinancials(ctx context.Context) (*domain.BankFinancials, error)

	// ApplyEarnings atomically adds netIncome minus dividends to retained earnings.
	ApplyEarnings(ctx context.Context, netIncome, dividends decimal.Decimal, userID string, now time.Time) (*domain.BankFinancials, error)
}
