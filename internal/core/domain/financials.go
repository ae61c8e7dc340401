package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankFinancials is the bank-level aggregate outside any customer account.
type BankFinancials struct {
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// ApplyEarnings adds net income less dividends to retained earnings.
func (f *BankFinancials) ApplyEarnings(netIncome, dividends decimal.Decimal, userID string, now time.Time) {
	f.RetainedEarnings = f.RetainedEarnings.Add(netIncome).Sub(dividends)
	f.LastUpdatedAt = now
	f.LastUpdatedBy = userID
}
