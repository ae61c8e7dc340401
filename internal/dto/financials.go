package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateRetainedEarningsRequest applies a period's net income and dividends.
type UpdateRetainedEarningsRequest struct {
	NetIncome decimal.Decimal `json:"netIncome"`
	Dividends decimal.Decimal `json:"dividends" binding:"non_negative_decimal"`
}

// RetainedEarningsResponse represents the retained earnings aggregate.
type RetainedEarningsResponse struct {
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// ToRetainedEarningsResponse converts a domain.BankFinancials.
func ToRetainedEarningsResponse(f *domain.BankFinancials) RetainedEarningsResponse {
	return RetainedEarningsResponse{
		RetainedEarnings: f.RetainedEarnings,
		LastUpdatedAt:    f.LastUpdatedAt,
		LastUpdatedBy:    f.LastUpdatedBy,
	}
}
