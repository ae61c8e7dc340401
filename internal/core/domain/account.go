package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountType classifies an account. It carries no behavior in the core.
type AccountType string

const (
	Checking     AccountType = "CHECKING"
	Savings      AccountType = "SAVINGS"
	Investment   AccountType = "INVESTMENT"
	Loan         AccountType = "LOAN"
	BusinessLoan AccountType = "BUSINESS_LOAN"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case Checking, Savings, Investment, Loan, BusinessLoan:
		return true
	}
	return false
}

// IsLoan reports whether the account type is a lending product.
func (t AccountType) IsLoan() bool {
	return t == Loan || t == BusinessLoan
}

// ParseAccountType parses an account type name case-insensitively.
func ParseAccountType(v string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(v)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, v)
	}
	return t, nil
}

// Account is a customer account held by the bank.
type Account struct {
	AccountID       string          `json:"accountID"`
	AccountType     AccountType     `json:"accountType"`
	OwnerID         string          `json:"ownerID"`
	Balance         decimal.Decimal `json:"balance"` // negative for drawn loans
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	State           AccountState    `json:"state"`
	IsClosed        bool            `json:"isClosed"`
	CredentialHash  string          `json:"-"`
	AuditFields
}

// NewAccount builds an active account with the given opening balance.
func NewAccount(id string, accountType AccountType, ownerID string, openingBalance decimal.Decimal, parentID string, createdBy string, now time.Time) Account {
	return Account{
		AccountID:       id,
		AccountType:     accountType,
		OwnerID:         ownerID,
		Balance:         openingBalance,
		ParentAccountID: parentID,
		State:           StateActive,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
}

// CheckPermits fails with ErrFrozenAccount when the current state forbids op.
func (a *Account) CheckPermits(op Operation) error {
	if !a.State.Permits(op) {
		return fmt.Errorf("%w: %s not allowed on %s account %s", apperrors.ErrFrozenAccount, op, strings.ToLower(string(a.State)), a.AccountID)
	}
	return nil
}

// Deposit credits amount to the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := a.CheckPermits(OpDeposit); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw debits amount from the balance.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	return a.debit(OpWithdraw, amount)
}

// TransferOut debits the outgoing leg of a transfer.
func (a *Account) TransferOut(amount decimal.Decimal) error {
	return a.debit(OpTransferOut, amount)
}

func (a *Account) debit(op Operation, amount decimal.Decimal) error {
	if err := a.CheckPermits(op); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return fmt.Errorf("%w: account %s balance %s is below %s", apperrors.ErrInsufficientFunds, a.AccountID, a.Balance.StringFixed(2), amount.StringFixed(2))
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// TransitionTo moves the account to target, recording who changed it.
func (a *Account) TransitionTo(target AccountState, userID string, now time.Time) error {
	next, err := NextState(a.State, target)
	if err != nil {
		return err
	}
	a.State = next
	if next == StateClosed {
		a.IsClosed = true
	}
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
	return nil
}
