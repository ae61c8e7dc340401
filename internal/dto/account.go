package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS INVESTMENT LOAN BUSINESS_LOAN"`
	OwnerID         string             `json:"ownerID" binding:"required"`
	InitialBalance  decimal.Decimal    `json:"initialBalance"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional
	Credential      string             `json:"credential"`      // Optional, enables account login
}

// ChangeAccountStateRequest requests an account state transition.
type ChangeAccountStateRequest struct {
	State  domain.AccountState `json:"state" binding:"required,oneof=ACTIVE FROZEN SUSPENDED CLOSED"`
	Reason string              `json:"reason"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string              `json:"accountID"`
	AccountType     domain.AccountType  `json:"accountType"`
	OwnerID         string              `json:"ownerID"`
	Balance         decimal.Decimal     `json:"balance"`
	ParentAccountID string              `json:"parentAccountID,omitempty"`
	State           domain.AccountState `json:"state"`
	IsClosed        bool                `json:"isClosed"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
	LastUpdatedAt   time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy   string              `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		AccountType:     acc.AccountType,
		OwnerID:         acc.OwnerID,
		Balance:         acc.Balance,
		ParentAccountID: acc.ParentAccountID,
		State:           acc.State,
		IsClosed:        acc.IsClosed,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
