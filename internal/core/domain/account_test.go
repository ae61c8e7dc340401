package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(state domain.AccountState, balance int64) domain.Account {
	acc := domain.NewAccount("ACC_00000001", domain.Checking, "user-1", decimal.NewFromInt(balance), "", "user-1", time.Now())
	acc.State = state
	return acc
}

func TestAccountStatePolicy(t *testing.T) {
	tests := []struct {
		state       domain.AccountState
		deposit     bool
		withdraw    bool
		transferOut bool
	}{
		{domain.StateActive, true, true, true},
		{domain.StateFrozen, true, false, false},
		{domain.StateSuspended, true, false, false},
		{domain.StateClosed, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.deposit, tt.state.Permits(domain.OpDeposit))
			assert.Equal(t, tt.withdraw, tt.state.Permits(domain.OpWithdraw))
			assert.Equal(t, tt.transferOut, tt.state.Permits(domain.OpTransferOut))
		})
	}
}

func TestAccount_Deposit(t *testing.T) {
	acc := newTestAccount(domain.StateFrozen, 100)
	require.NoError(t, acc.Deposit(decimal.NewFromInt(50)))
	assert.True(t, decimal.NewFromInt(150).Equal(acc.Balance))

	err := acc.Deposit(decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransaction)

	closed := newTestAccount(domain.StateClosed, 100)
	err = closed.Deposit(decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrFrozenAccount)
	assert.Contains(t, err.Error(), "closed")
	assert.True(t, decimal.NewFromInt(100).Equal(closed.Balance))
}

func TestAccount_Withdraw(t *testing.T) {
	acc := newTestAccount(domain.StateActive, 100)
	require.NoError(t, acc.Withdraw(decimal.NewFromInt(100)))
	assert.True(t, acc.Balance.IsZero())

	err := acc.Withdraw(decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.True(t, acc.Balance.IsZero())

	for _, state := range []domain.AccountState{domain.StateFrozen, domain.StateSuspended, domain.StateClosed} {
		blocked := newTestAccount(state, 1000)
		assert.ErrorIs(t, blocked.Withdraw(decimal.NewFromInt(1)), apperrors.ErrFrozenAccount, state)
		assert.ErrorIs(t, blocked.TransferOut(decimal.NewFromInt(1)), apperrors.ErrFrozenAccount, state)
	}
}

func TestAccount_TransitionTo(t *testing.T) {
	now := time.Now()
	acc := newTestAccount(domain.StateActive, 0)

	require.NoError(t, acc.TransitionTo(domain.StateFrozen, "emp-1", now))
	assert.Equal(t, domain.StateFrozen, acc.State)
	assert.Equal(t, "emp-1", acc.LastUpdatedBy)

	require.NoError(t, acc.TransitionTo(domain.StateClosed, "emp-1", now))
	assert.True(t, acc.IsClosed)

	for _, target := range []domain.AccountState{domain.StateActive, domain.StateFrozen, domain.StateSuspended} {
		err := acc.TransitionTo(target, "admin-1", now)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
		assert.Equal(t, domain.StateClosed, acc.State)
	}
	assert.NoError(t, acc.TransitionTo(domain.StateClosed, "admin-1", now))
}

func TestParseAccountState(t *testing.T) {
	s, err := domain.ParseAccountState(" suspended ")
	require.NoError(t, err)
	assert.Equal(t, domain.StateSuspended, s)

	_, err = domain.ParseAccountState("dormant")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthorizeAccountAccess(t *testing.T) {
	acc := newTestAccount(domain.StateActive, 0)

	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr bool
	}{
		{"owner customer", domain.Actor{UserID: "user-1", Role: domain.RoleCustomer}, false},
		{"other customer", domain.Actor{UserID: "user-2", Role: domain.RoleCustomer}, true},
		{"employee", domain.Actor{UserID: "emp-1", Role: domain.RoleEmployee}, false},
		{"admin", domain.Actor{UserID: "adm-1", Role: domain.RoleAdmin}, false},
		{"matching account session", domain.Actor{UserID: "user-1", Role: domain.RoleCustomer, AuthenticatedAccountID: acc.AccountID}, false},
		{"other account session", domain.Actor{UserID: "user-1", Role: domain.RoleCustomer, AuthenticatedAccountID: "ACC_FFFFFFFF"}, true},
		{"unknown role", domain.Actor{UserID: "user-1", Role: "GUEST"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.AuthorizeAccountAccess(tt.actor, acc)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnauthorizedAccess)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewAccountID(t *testing.T) {
	id := domain.NewAccountID()
	assert.Regexp(t, `^ACC_[0-9A-F]{8}$`, id)
	assert.Regexp(t, `^TXN_[0-9A-F]{8}$`, domain.NewTransactionID())
}
