package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
)

// AccountState is the lifecycle state of an account.
type AccountState string

const (
	StateActive    AccountState = "ACTIVE"
	StateFrozen    AccountState = "FROZEN"
	StateSuspended AccountState = "SUSPENDED"
	StateClosed    AccountState = "CLOSED"
)

// Operation is a balance-affecting action gated by account state.
type Operation string

const (
	OpDeposit     Operation = "deposit"
	OpWithdraw    Operation = "withdraw"
	OpTransferOut Operation = "outgoing transfer"
)

var statePolicy = map[AccountState]map[Operation]bool{
	StateActive:    {OpDeposit: true, OpWithdraw: true, OpTransferOut: true},
	StateFrozen:    {OpDeposit: true},
	StateSuspended: {OpDeposit: true},
	StateClosed:    {},
}

// IsValid reports whether s is a known state.
func (s AccountState) IsValid() bool {
	_, ok := statePolicy[s]
	return ok
}

// Permits reports whether the state allows op.
func (s AccountState) Permits(op Operation) bool {
	return statePolicy[s][op]
}

// ParseAccountState parses a state name case-insensitively.
func ParseAccountState(v string) (AccountState, error) {
	s := AccountState(strings.ToUpper(strings.TrimSpace(v)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown account state %q", apperrors.ErrValidation, v)
	}
	return s, nil
}

// NextState computes the state reached from current when target is requested.
// A closed account never leaves the closed state.
func NextState(current, target AccountState) (AccountState, error) {
	if !target.IsValid() {
		return current, fmt.Errorf("%w: unknown account state %q", apperrors.ErrValidation, target)
	}
	if current == StateClosed && target != StateClosed {
		return current, fmt.Errorf("%w: closed account cannot become %s", apperrors.ErrInvalidStateTransition, target)
	}
	return target, nil
}
