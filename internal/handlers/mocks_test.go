package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) txnResult(args mock.Arguments) (*domain.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Transaction, error) {
	return m.txnResult(m.Called(ctx, accountID, amount, description, actor))
}
func (m *MockTransactionService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Transaction, error) {
	return m.txnResult(m.Called(ctx, accountID, amount, description, actor))
}
func (m *MockTransactionService) Transfer(ctx context.Context, sourceAccountID, targetAccountID string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Transaction, error) {
	return m.txnResult(m.Called(ctx, sourceAccountID, targetAccountID, amount, description, actor))
}
func (m *MockTransactionService) ApproveTransaction(ctx context.Context, transactionID string, actor domain.Actor) (*domain.Transaction, error) {
	return m.txnResult(m.Called(ctx, transactionID, actor))
}
func (m *MockTransactionService) DenyTransaction(ctx context.Context, transactionID string, reason string, actor domain.Actor) (*domain.Transaction, error) {
	return m.txnResult(m.Called(ctx, transactionID, reason, actor))
}
func (m *MockTransactionService) ListPendingApprovals(ctx context.Context, actor domain.Actor) ([]domain.Transaction, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID string, actor domain.Actor) (*domain.Transaction, error) {
	return m.txnResult(m.Called(ctx, transactionID, actor))
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams, actor domain.Actor) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams, actor domain.Actor) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) accountResult(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string, actor domain.Actor) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, accountID, actor))
}
func (m *MockAccountService) ListAccounts(ctx context.Context, actor domain.Actor, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, req, actor))
}
func (m *MockAccountService) ChangeAccountState(ctx context.Context, accountID string, state domain.AccountState, actor domain.Actor) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, accountID, state, actor))
}
func (m *MockAccountService) AuthenticateAccount(ctx context.Context, accountID string, credential string) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, accountID, credential))
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) DailyTransactionReport(ctx context.Context, day time.Time, actor domain.Actor) (*domain.DailyTransactionReport, error) {
	args := m.Called(ctx, day, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyTransactionReport), args.Error(1)
}
func (m *MockReportingService) AccountSummary(ctx context.Context, accountID string, actor domain.Actor) (*domain.AccountSummary, error) {
	args := m.Called(ctx, accountID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSummary), args.Error(1)
}
func (m *MockReportingService) FinancialSummary(ctx context.Context, actor domain.Actor) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}
func (m *MockReportingService) AuditLog(ctx context.Context, limit int, offset int, actor domain.Actor) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit, offset, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock FinancialsService ---
type MockFinancialsService struct {
	mock.Mock
}

func (m *MockFinancialsService) GetRetainedEarnings(ctx context.Context, actor domain.Actor) (*domain.BankFinancials, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankFinancials), args.Error(1)
}
func (m *MockFinancialsService) UpdateRetainedEarnings(ctx context.Context, netIncome, dividends decimal.Decimal, actor domain.Actor) (*domain.BankFinancials, error) {
	args := m.Called(ctx, netIncome, dividends, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankFinancials), args.Error(1)
}

var _ portssvc.FinancialsSvc = (*MockFinancialsService)(nil)

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, actor domain.Actor, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, actor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

var _ portssvc.NotificationSvc = (*MockNotificationService)(nil)
