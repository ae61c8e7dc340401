package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DailyReportParams selects the day of a daily report. Defaults to today.
type DailyReportParams struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// TypeTotalsResponse is the count and sum of one transaction type.
type TypeTotalsResponse struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// DailyReportResponse represents the daily transaction report.
type DailyReportResponse struct {
	Date              string                                        `json:"date"`
	TotalTransactions int                                           `json:"totalTransactions"`
	ByType            map[domain.TransactionType]TypeTotalsResponse `json:"byType"`
	ByStatus          map[domain.TransactionStatus]int              `json:"byStatus"`
	Transactions      []TransactionResponse                         `json:"transactions"`
}

// ToDailyReportResponse converts a domain.DailyTransactionReport.
func ToDailyReportResponse(r *domain.DailyTransactionReport) DailyReportResponse {
	byType := make(map[domain.TransactionType]TypeTotalsResponse, len(r.ByType))
	for t, totals := range r.ByType {
		byType[t] = TypeTotalsResponse{Count: totals.Count, Amount: totals.Amount}
	}
	return DailyReportResponse{
		Date:              r.Date.Format("2006-01-02"),
		TotalTransactions: r.TotalTransactions,
		ByType:            byType,
		ByStatus:          r.ByStatus,
		Transactions:      ToTransactionResponses(r.Transactions),
	}
}

// AccountSummaryResponse represents an account and its recent activity.
type AccountSummaryResponse struct {
	Account            AccountResponse       `json:"account"`
	TransactionCount   int                   `json:"transactionCount"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}

// ToAccountSummaryResponse converts a domain.AccountSummary.
func ToAccountSummaryResponse(s *domain.AccountSummary) AccountSummaryResponse {
	return AccountSummaryResponse{
		Account:            ToAccountResponse(&s.Account),
		TransactionCount:   s.TransactionCount,
		RecentTransactions: ToTransactionResponses(s.RecentTransactions),
	}
}

// FinancialSummaryResponse represents the bank-wide financial position.
type FinancialSummaryResponse struct {
	TotalDeposits    decimal.Decimal `json:"totalDeposits"`
	TotalLoans       decimal.Decimal `json:"totalLoans"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	TotalAccounts    int             `json:"totalAccounts"`
	ActiveAccounts   int             `json:"activeAccounts"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// ToFinancialSummaryResponse converts a domain.FinancialSummary.
func ToFinancialSummaryResponse(s *domain.FinancialSummary) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		TotalDeposits:    s.TotalDeposits,
		TotalLoans:       s.TotalLoans,
		RetainedEarnings: s.RetainedEarnings,
		TotalAccounts:    s.TotalAccounts,
		ActiveAccounts:   s.ActiveAccounts,
		GeneratedAt:      s.GeneratedAt,
	}
}

// AuditLogParams pages through the audit log.
type AuditLogParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// AuditLogResponse wraps a page of audit entries.
type AuditLogResponse struct {
	Entries []domain.AuditEntry `json:"entries"`
}
