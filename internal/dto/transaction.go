package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest credits an account.
type DepositRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"positive_decimal"`
	Description string          `json:"description" binding:"max=255"`
}

// WithdrawRequest debits an account.
type WithdrawRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"positive_decimal"`
	Description string          `json:"description" binding:"max=255"`
}

// TransferRequest moves funds between two accounts.
type TransferRequest struct {
	SourceAccountID string          `json:"sourceAccountID" binding:"required"`
	TargetAccountID string          `json:"targetAccountID" binding:"required,nefield=SourceAccountID"`
	Amount          decimal.Decimal `json:"amount" binding:"positive_decimal"`
	Description     string          `json:"description" binding:"max=255"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	Type            domain.TransactionType   `json:"type"`
	AccountID       string                   `json:"accountID"`
	TargetAccountID string                   `json:"targetAccountID,omitempty"`
	Amount          decimal.Decimal          `json:"amount"`
	Description     string                   `json:"description"`
	Status          domain.TransactionStatus `json:"status"`
	ApprovedBy      string                   `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time               `json:"approvedAt,omitempty"`
	RejectionReason string                   `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	CreatedBy       string                   `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		Type:            txn.Type,
		AccountID:       txn.AccountID,
		TargetAccountID: txn.TargetAccountID,
		Amount:          txn.Amount,
		Description:     txn.Description,
		Status:          txn.Status,
		ApprovedBy:      txn.ApprovedBy,
		ApprovedAt:      txn.ApprovedAt,
		RejectionReason: txn.RejectionReason,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID string                   `form:"accountID"`
	Status    domain.TransactionStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED COMPLETED"`
	Limit     int                      `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string                  `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// DenyTransactionRequest optionally carries a reason for the denial.
type DenyTransactionRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}
