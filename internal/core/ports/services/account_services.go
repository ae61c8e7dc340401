package services

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account the actor may see.
	GetAccountByID(ctx context.Context, accountID string, actor domain.Actor) (*domain.Account, error)

	// ListAccounts lists all accounts for staff, or the actor's own accounts otherwise.
	ListAccounts(ctx context.Context, actor domain.Actor, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new active account. Staff only.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error)

	// ChangeAccountState transitions the account to a new state. Staff only.
	ChangeAccountState(ctx context.Context, accountID string, state domain.AccountState, actor domain.Actor) (*domain.Account, error)
}

// AccountAuthenticatorSvc verifies account credentials.
type AccountAuthenticatorSvc interface {
	// AuthenticateAccount checks the credential of an open account.
	AuthenticateAccount(ctx context.Context, accountID string, credential string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountAuthenticatorSvc
}
