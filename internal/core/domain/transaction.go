package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement requested.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTransfer   TransactionType = "TRANSFER"
)

// TransactionStatus tracks a transaction through approval and execution.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusApproved  TransactionStatus = "APPROVED"
	StatusRejected  TransactionStatus = "REJECTED"
	StatusCompleted TransactionStatus = "COMPLETED"
)

// IsTerminal reports whether no further transition is possible.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// AmountScale is the number of decimal places stored for amounts and balances.
const AmountScale int32 = 2

// HasAmountScale reports whether d fits in AmountScale decimal places.
func HasAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// Transaction is a single requested money movement.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	Type            TransactionType   `json:"type"`
	AccountID       string            `json:"accountID"`
	TargetAccountID string            `json:"targetAccountID,omitempty"`
	Amount          decimal.Decimal   `json:"amount"`
	Description     string            `json:"description"`
	Status          TransactionStatus `json:"status"`
	ApprovedBy      string            `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time        `json:"approvedAt,omitempty"`
	RejectionReason string            `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	CreatedBy       string            `json:"createdBy"`
}

// NewTransaction creates a pending transaction.
func NewTransaction(id string, txnType TransactionType, accountID, targetAccountID string, amount decimal.Decimal, description, createdBy string, now time.Time) Transaction {
	return Transaction{
		TransactionID:   id,
		Type:            txnType,
		AccountID:       accountID,
		TargetAccountID: targetAccountID,
		Amount:          amount,
		Description:     description,
		Status:          StatusPending,
		CreatedAt:       now,
		CreatedBy:       createdBy,
	}
}

// AccountIDs lists the accounts touched by the transaction.
func (t Transaction) AccountIDs() []string {
	if t.Type == TransactionTransfer {
		return []string{t.AccountID, t.TargetAccountID}
	}
	return []string{t.AccountID}
}

// Approve moves a pending transaction to approved.
func (t *Transaction) Approve(approver string, at time.Time) error {
	if t.Status != StatusPending {
		return t.transitionError(StatusApproved)
	}
	t.Status = StatusApproved
	t.ApprovedBy = approver
	t.ApprovedAt = &at
	return nil
}

// Complete marks an approved transaction as executed.
func (t *Transaction) Complete() error {
	if t.Status != StatusApproved {
		return t.transitionError(StatusCompleted)
	}
	t.Status = StatusCompleted
	return nil
}

// Reject moves a pending or approved transaction to rejected.
func (t *Transaction) Reject(reason string) error {
	if t.Status != StatusPending && t.Status != StatusApproved {
		return t.transitionError(StatusRejected)
	}
	t.Status = StatusRejected
	t.RejectionReason = reason
	return nil
}

func (t *Transaction) transitionError(to TransactionStatus) error {
	return fmt.Errorf("%w: transaction %s cannot move from %s to %s", apperrors.ErrInvalidTransaction, t.TransactionID, t.Status, to)
}
