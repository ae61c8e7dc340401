package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a domain event.
type EventType string

const (
	EventBalanceChanged       EventType = "BALANCE_CHANGED"
	EventTransactionCompleted EventType = "TRANSACTION_COMPLETED"
	EventTransactionApproved  EventType = "TRANSACTION_APPROVED"
	EventTransactionRejected  EventType = "TRANSACTION_REJECTED"
	EventTransactionPending   EventType = "TRANSACTION_PENDING"
	EventAccountStateChanged  EventType = "ACCOUNT_STATE_CHANGED"
)

// Event is a fact emitted after a state change has been committed.
type Event interface {
	EventType() EventType
	OccurredAt() time.Time
	// AggregateID is the account or transaction the event is about.
	AggregateID() string
	// ActorID is the user that caused the event.
	ActorID() string
}

// BaseEvent carries the fields shared by every event.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) ActorID() string       { return e.Actor }

// BalanceChangedEvent reports a committed balance mutation.
type BalanceChangedEvent struct {
	BaseEvent
	AccountID       string          `json:"accountID"`
	OwnerID         string          `json:"ownerID"`
	TransactionID   string          `json:"transactionID"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
}

func (e BalanceChangedEvent) EventType() EventType { return EventBalanceChanged }
func (e BalanceChangedEvent) AggregateID() string  { return e.AccountID }

// Delta is the signed change applied to the balance.
func (e BalanceChangedEvent) Delta() decimal.Decimal {
	return e.NewBalance.Sub(e.PreviousBalance)
}

// TransactionCompletedEvent reports a fully executed transaction.
type TransactionCompletedEvent struct {
	BaseEvent
	Transaction Transaction `json:"transaction"`
	OwnerID     string      `json:"ownerID"`
}

func (e TransactionCompletedEvent) EventType() EventType { return EventTransactionCompleted }
func (e TransactionCompletedEvent) AggregateID() string  { return e.Transaction.TransactionID }

// TransactionApprovedEvent reports a manual approval.
type TransactionApprovedEvent struct {
	BaseEvent
	TransactionID string          `json:"transactionID"`
	Approver      string          `json:"approver"`
	Amount        decimal.Decimal `json:"amount"`
	OwnerID       string          `json:"ownerID"`
}

func (e TransactionApprovedEvent) EventType() EventType { return EventTransactionApproved }
func (e TransactionApprovedEvent) AggregateID() string  { return e.TransactionID }

// TransactionRejectedEvent reports a denial or a failed execution.
type TransactionRejectedEvent struct {
	BaseEvent
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	OwnerID       string          `json:"ownerID"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`
}

func (e TransactionRejectedEvent) EventType() EventType { return EventTransactionRejected }
func (e TransactionRejectedEvent) AggregateID() string  { return e.TransactionID }

// TransactionPendingEvent reports a transaction waiting for manual approval.
type TransactionPendingEvent struct {
	BaseEvent
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	OwnerID       string          `json:"ownerID"`
	Amount        decimal.Decimal `json:"amount"`
	RequiredRole  Role            `json:"requiredRole"`
}

func (e TransactionPendingEvent) EventType() EventType { return EventTransactionPending }
func (e TransactionPendingEvent) AggregateID() string  { return e.TransactionID }

// AccountStateChangedEvent reports an account state transition or creation.
type AccountStateChangedEvent struct {
	BaseEvent
	AccountID string       `json:"accountID"`
	OwnerID   string       `json:"ownerID"`
	From      AccountState `json:"from,omitempty"`
	To        AccountState `json:"to"`
}

func (e AccountStateChangedEvent) EventType() EventType { return EventAccountStateChanged }
func (e AccountStateChangedEvent) AggregateID() string  { return e.AccountID }
