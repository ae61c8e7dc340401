package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAccountNotFound is returned when an account lookup misses.
var ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)

// ErrTransactionNotFound is returned when a transaction lookup misses.
var ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)

// ErrUnauthorizedAccess indicates the actor may not perform the operation on the target.
var ErrUnauthorizedAccess = errors.New("unauthorized access")

// ErrInsufficientFunds indicates a debit larger than the available balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrFrozenAccount indicates the account state forbids the requested operation.
var ErrFrozenAccount = errors.New("account state forbids operation")

// ErrInvalidTransaction covers malformed requests and illegal status transitions.
var ErrInvalidTransaction = errors.New("invalid transaction")

// ErrInvalidAmount is returned for non-positive amounts and sub-cent amounts.
var ErrInvalidAmount = fmt.Errorf("%w: amount must be positive whole cents", ErrInvalidTransaction)

// ErrSameAccount is returned for a transfer whose source and target coincide.
var ErrSameAccount = fmt.Errorf("%w: source and target account are the same", ErrInvalidTransaction)

// ErrInvalidStateTransition is returned when an account state change is not allowed.
var ErrInvalidStateTransition = errors.New("invalid account state transition")

// AppError carries an HTTP-ish status code alongside a wrapped infrastructure error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
