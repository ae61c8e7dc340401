package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DailyTransactionReport aggregates transactions created on one day.
type DailyTransactionReport struct {
	Date              time.Time                      `json:"date"`
	TotalTransactions int                            `json:"totalTransactions"`
	ByType            map[TransactionType]TypeTotals `json:"byType"`
	ByStatus          map[TransactionStatus]int      `json:"byStatus"`
	Transactions      []Transaction                  `json:"transactions"`
}

// TypeTotals is the count and summed amount of one transaction type.
type TypeTotals struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// AccountSummary is an account with its most recent activity.
type AccountSummary struct {
	Account            Account       `json:"account"`
	TransactionCount   int           `json:"transactionCount"`
	RecentTransactions []Transaction `json:"recentTransactions"`
}

// FinancialSummary is the bank-wide position.
type FinancialSummary struct {
	TotalDeposits    decimal.Decimal `json:"totalDeposits"`
	TotalLoans       decimal.Decimal `json:"totalLoans"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	TotalAccounts    int             `json:"totalAccounts"`
	ActiveAccounts   int             `json:"activeAccounts"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// AuditEntry is a persisted record of a domain event.
type AuditEntry struct {
	EntryID     string          `json:"entryID"`
	EventType   EventType       `json:"eventType"`
	AggregateID string          `json:"aggregateID"`
	ActorID     string          `json:"actorID"`
	Payload     json.RawMessage `json:"payload"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// AccountStats are the account aggregates the financial summary needs.
type AccountStats struct {
	PositiveBalances decimal.Decimal
	NegativeBalances decimal.Decimal
	TotalAccounts    int
	ActiveAccounts   int
}
