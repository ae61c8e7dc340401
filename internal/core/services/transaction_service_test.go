package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/core/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	checkingID = "ACC_CHK00001"
	savingsID  = "ACC_SAV00001"
	otherID    = "ACC_OTH00001"
	frozenID   = "ACC_FRZ00001"
	closedID   = "ACC_CLS00001"
)

var (
	customer      = domain.Actor{UserID: "cust-1", Role: domain.RoleCustomer}
	otherCustomer = domain.Actor{UserID: "cust-2", Role: domain.RoleCustomer}
	employee      = domain.Actor{UserID: "emp-1", Role: domain.RoleEmployee}
	admin         = domain.Actor{UserID: "adm-1", Role: domain.RoleAdmin}
)

// recordingPublisher keeps every published event in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// steppingClock advances one second on every call.
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

// flakyUnitOfWork fails the first failures units of work with err.
type flakyUnitOfWork struct {
	portsrepo.UnitOfWork
	failures int
	err      error
}

func (u *flakyUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repo portsrepo.TxRepository) error) error {
	if u.failures > 0 {
		u.failures--
		return u.err
	}
	return u.UnitOfWork.WithinTx(ctx, fn)
}

func accountFilter(accountID string) portsrepo.TransactionFilter {
	return portsrepo.TransactionFilter{AccountID: accountID}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type TransactionServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	publisher *recordingPublisher
	service   portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.publisher = &recordingPublisher{}

	opened := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	seed := func(id, owner, balance string, state domain.AccountState) {
		account := domain.NewAccount(id, domain.Checking, owner, dec(balance), "", "seed", opened)
		account.State = state
		account.IsClosed = state == domain.StateClosed
		suite.Require().NoError(suite.store.SaveAccount(suite.ctx, account))
	}
	seed(checkingID, customer.UserID, "100000", domain.StateActive)
	seed(savingsID, customer.UserID, "500", domain.StateActive)
	seed(otherID, otherCustomer.UserID, "1000", domain.StateActive)
	seed(frozenID, customer.UserID, "5000", domain.StateFrozen)
	seed(closedID, customer.UserID, "0", domain.StateClosed)

	suite.service = services.NewTransactionService(
		suite.store.Provider(),
		domain.DefaultApprovalPolicy(),
		services.WithEventPublisher(suite.publisher),
		services.WithClock(steppingClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))),
	)
}

func (suite *TransactionServiceTestSuite) balance(accountID string) decimal.Decimal {
	account, err := suite.store.FindAccountByID(suite.ctx, accountID)
	suite.Require().NoError(err)
	return account.Balance
}

func (suite *TransactionServiceTestSuite) assertBalance(accountID, expected string) {
	actual := suite.balance(accountID)
	suite.True(dec(expected).Equal(actual), "balance of %s: expected %s, got %s", accountID, expected, actual)
}

func (suite *TransactionServiceTestSuite) storedStatus(transactionID string) domain.TransactionStatus {
	txn, err := suite.store.FindTransactionByID(suite.ctx, transactionID)
	suite.Require().NoError(err)
	return txn.Status
}

func (suite *TransactionServiceTestSuite) TestDeposit_AutoApproved() {
	txn, err := suite.service.Deposit(suite.ctx, checkingID, dec("1000"), "paycheck", customer)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Equal(domain.SystemApprover, txn.ApprovedBy)
	suite.NotNil(txn.ApprovedAt)
	suite.Equal(domain.StatusCompleted, suite.storedStatus(txn.TransactionID))
	suite.assertBalance(checkingID, "101000")
	suite.Equal([]domain.EventType{domain.EventBalanceChanged, domain.EventTransactionCompleted}, suite.publisher.types())

	changed := suite.publisher.events[0].(domain.BalanceChangedEvent)
	suite.True(dec("1000").Equal(changed.Delta()))
}

func (suite *TransactionServiceTestSuite) TestDeposit_AnyoneMayDepositIntoAnyAccount() {
	txn, err := suite.service.Deposit(suite.ctx, otherID, dec("10"), "", customer)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.assertBalance(otherID, "1010")
}

func (suite *TransactionServiceTestSuite) TestSubmit_InvalidAmount() {
	for _, amount := range []string{"0", "-5"} {
		_, err := suite.service.Deposit(suite.ctx, checkingID, dec(amount), "", customer)
		suite.ErrorIs(err, apperrors.ErrInvalidAmount)
		suite.ErrorIs(err, apperrors.ErrInvalidTransaction)
	}

	count, err := suite.store.CountTransactions(suite.ctx, accountFilter(checkingID))
	suite.Require().NoError(err)
	suite.Zero(count)
	suite.Empty(suite.publisher.events)
}

func (suite *TransactionServiceTestSuite) TestSubmit_SubCentAmount() {
	_, err := suite.service.Deposit(suite.ctx, checkingID, dec("0.004"), "", customer)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	_, err = suite.service.Withdraw(suite.ctx, checkingID, dec("25000.001"), "", customer)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	_, err = suite.service.Transfer(suite.ctx, checkingID, otherID, dec("1.999"), "", customer)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	count, err := suite.store.CountTransactions(suite.ctx, accountFilter(checkingID))
	suite.Require().NoError(err)
	suite.Zero(count)
	suite.assertBalance(checkingID, "100000")

	txn, err := suite.service.Deposit(suite.ctx, checkingID, dec("10.500"), "", customer)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.assertBalance(checkingID, "100010.50")
}

func (suite *TransactionServiceTestSuite) TestSubmit_AbortedExecutionIsRejected() {
	boom := errors.New("connection reset")
	repos := suite.store.Provider()
	repos.UnitOfWork = &flakyUnitOfWork{UnitOfWork: suite.store, failures: 1, err: boom}
	service := services.NewTransactionService(repos, domain.DefaultApprovalPolicy(), services.WithEventPublisher(suite.publisher))

	_, err := service.Deposit(suite.ctx, checkingID, dec("10"), "", customer)

	suite.ErrorIs(err, boom)
	var failed *services.TransactionFailedError
	suite.False(errors.As(err, &failed))
	suite.assertBalance(checkingID, "100000")

	txns, _, err := suite.store.ListTransactions(suite.ctx, accountFilter(checkingID))
	suite.Require().NoError(err)
	suite.Require().Len(txns, 1)
	suite.Equal(domain.StatusRejected, txns[0].Status)
	suite.Contains(txns[0].RejectionReason, "connection reset")
	suite.Equal([]domain.EventType{domain.EventTransactionRejected}, suite.publisher.types())

	pending, err := suite.service.ListPendingApprovals(suite.ctx, admin)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *TransactionServiceTestSuite) TestSubmit_UnknownAccount() {
	_, err := suite.service.Deposit(suite.ctx, "ACC_MISSING1", dec("10"), "", customer)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestWithdraw_LargeCustomerWithdrawalWaitsForEmployee() {
	txn, err := suite.service.Withdraw(suite.ctx, checkingID, dec("30000"), "car", customer)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, txn.Status)
	suite.assertBalance(checkingID, "100000")
	suite.Require().Equal([]domain.EventType{domain.EventTransactionPending}, suite.publisher.types())
	pending := suite.publisher.events[0].(domain.TransactionPendingEvent)
	suite.Equal(domain.RoleEmployee, pending.RequiredRole)
	suite.Equal(customer.UserID, pending.OwnerID)

	suite.publisher.reset()
	approved, err := suite.service.ApproveTransaction(suite.ctx, txn.TransactionID, employee)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, approved.Status)
	suite.Equal(employee.UserID, approved.ApprovedBy)
	suite.assertBalance(checkingID, "70000")
	suite.Equal([]domain.EventType{
		domain.EventTransactionApproved,
		domain.EventBalanceChanged,
		domain.EventTransactionCompleted,
	}, suite.publisher.types())
}

func (suite *TransactionServiceTestSuite) TestWithdraw_EmployeeIsApprovedByRole() {
	txn, err := suite.service.Withdraw(suite.ctx, checkingID, dec("30000"), "", employee)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Equal(domain.RoleEmployee.DisplayName(), txn.ApprovedBy)
	suite.assertBalance(checkingID, "70000")
}

func (suite *TransactionServiceTestSuite) TestWithdraw_AboveRoleThresholdNeedsAdmin() {
	txn, err := suite.service.Withdraw(suite.ctx, checkingID, dec("80000"), "", employee)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, txn.Status)

	_, err = suite.service.ApproveTransaction(suite.ctx, txn.TransactionID, employee)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)
	suite.Equal(domain.StatusPending, suite.storedStatus(txn.TransactionID))

	approved, err := suite.service.ApproveTransaction(suite.ctx, txn.TransactionID, admin)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, approved.Status)
	suite.assertBalance(checkingID, "20000")
}

func (suite *TransactionServiceTestSuite) TestWithdraw_CustomerCannotTouchForeignAccount() {
	_, err := suite.service.Withdraw(suite.ctx, otherID, dec("10"), "", customer)

	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)
	suite.assertBalance(otherID, "1000")
	count, err := suite.store.CountTransactions(suite.ctx, accountFilter(otherID))
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *TransactionServiceTestSuite) TestWithdraw_InsufficientFundsRejects() {
	_, err := suite.service.Withdraw(suite.ctx, savingsID, dec("1000"), "", customer)

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	var failed *services.TransactionFailedError
	suite.Require().True(errors.As(err, &failed))
	suite.Equal(domain.StatusRejected, failed.Transaction.Status)
	suite.NotEmpty(failed.Transaction.RejectionReason)
	suite.Equal(domain.StatusRejected, suite.storedStatus(failed.Transaction.TransactionID))
	suite.assertBalance(savingsID, "500")
	suite.Equal([]domain.EventType{domain.EventTransactionRejected}, suite.publisher.types())
}

func (suite *TransactionServiceTestSuite) TestWithdraw_FrozenAccountRejects() {
	_, err := suite.service.Withdraw(suite.ctx, frozenID, dec("10"), "", customer)

	suite.ErrorIs(err, apperrors.ErrFrozenAccount)
	var failed *services.TransactionFailedError
	suite.Require().True(errors.As(err, &failed))
	suite.Equal(domain.StatusRejected, suite.storedStatus(failed.Transaction.TransactionID))
	suite.assertBalance(frozenID, "5000")
}

func (suite *TransactionServiceTestSuite) TestDeposit_FrozenAccountAcceptsCredits() {
	txn, err := suite.service.Deposit(suite.ctx, frozenID, dec("10"), "", customer)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.assertBalance(frozenID, "5010")
}

func (suite *TransactionServiceTestSuite) TestDeposit_ClosedAccountRejects() {
	_, err := suite.service.Deposit(suite.ctx, closedID, dec("10"), "", employee)

	suite.ErrorIs(err, apperrors.ErrFrozenAccount)
	suite.assertBalance(closedID, "0")
}

func (suite *TransactionServiceTestSuite) TestTransfer_MovesFundsAtomically() {
	txn, err := suite.service.Transfer(suite.ctx, checkingID, otherID, dec("250.50"), "rent", customer)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Equal(otherID, txn.TargetAccountID)
	suite.assertBalance(checkingID, "99749.50")
	suite.assertBalance(otherID, "1250.50")

	suite.Require().Equal([]domain.EventType{
		domain.EventBalanceChanged,
		domain.EventBalanceChanged,
		domain.EventTransactionCompleted,
	}, suite.publisher.types())
	suite.Equal(checkingID, suite.publisher.events[0].AggregateID())
	suite.Equal(otherID, suite.publisher.events[1].AggregateID())
}

func (suite *TransactionServiceTestSuite) TestTransfer_InsufficientFundsLeavesBothAccounts() {
	_, err := suite.service.Transfer(suite.ctx, savingsID, otherID, dec("501"), "", customer)

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.assertBalance(savingsID, "500")
	suite.assertBalance(otherID, "1000")
}

func (suite *TransactionServiceTestSuite) TestTransfer_IntoClosedAccountRejects() {
	_, err := suite.service.Transfer(suite.ctx, checkingID, closedID, dec("10"), "", customer)

	suite.ErrorIs(err, apperrors.ErrFrozenAccount)
	suite.assertBalance(checkingID, "100000")
}

func (suite *TransactionServiceTestSuite) TestTransfer_PendingApprovedByEmployee() {
	txn, err := suite.service.Transfer(suite.ctx, checkingID, otherID, dec("30000"), "tuition", customer)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, txn.Status)
	suite.assertBalance(checkingID, "100000")
	suite.assertBalance(otherID, "1000")

	suite.publisher.reset()
	approved, err := suite.service.ApproveTransaction(suite.ctx, txn.TransactionID, employee)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, approved.Status)
	suite.Equal(employee.UserID, approved.ApprovedBy)
	suite.Equal(domain.StatusCompleted, suite.storedStatus(txn.TransactionID))
	suite.assertBalance(checkingID, "70000")
	suite.assertBalance(otherID, "31000")

	suite.Require().Equal([]domain.EventType{
		domain.EventTransactionApproved,
		domain.EventBalanceChanged,
		domain.EventBalanceChanged,
		domain.EventTransactionCompleted,
	}, suite.publisher.types())
	suite.Equal(checkingID, suite.publisher.events[1].AggregateID())
	suite.Equal(otherID, suite.publisher.events[2].AggregateID())
}

func (suite *TransactionServiceTestSuite) TestTransfer_TargetClosedBeforeApproval() {
	txn, err := suite.service.Transfer(suite.ctx, checkingID, otherID, dec("30000"), "", customer)
	suite.Require().NoError(err)
	suite.Require().Equal(domain.StatusPending, txn.Status)

	err = suite.store.WithinTx(suite.ctx, func(ctx context.Context, repo portsrepo.TxRepository) error {
		accounts, err := repo.FindAccountsByIDsForUpdate(ctx, []string{otherID})
		if err != nil {
			return err
		}
		target := accounts[otherID]
		if err := target.TransitionTo(domain.StateClosed, admin.UserID, time.Now()); err != nil {
			return err
		}
		return repo.UpdateAccountsInTx(ctx, target)
	})
	suite.Require().NoError(err)

	_, err = suite.service.ApproveTransaction(suite.ctx, txn.TransactionID, employee)

	suite.ErrorIs(err, apperrors.ErrFrozenAccount)
	var failed *services.TransactionFailedError
	suite.Require().True(errors.As(err, &failed))
	suite.Equal(domain.StatusRejected, failed.Transaction.Status)
	suite.Equal(domain.StatusRejected, suite.storedStatus(txn.TransactionID))
	suite.assertBalance(checkingID, "100000")
	suite.assertBalance(otherID, "1000")
}

func (suite *TransactionServiceTestSuite) TestTransfer_SameAccount() {
	_, err := suite.service.Transfer(suite.ctx, checkingID, checkingID, dec("10"), "", customer)

	suite.ErrorIs(err, apperrors.ErrSameAccount)
	count, err := suite.store.CountTransactions(suite.ctx, accountFilter(checkingID))
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *TransactionServiceTestSuite) TestApprove_InsufficientFundsAtExecution() {
	txn, err := suite.service.Withdraw(suite.ctx, checkingID, dec("30000"), "", customer)
	suite.Require().NoError(err)

	// Drain the account while the withdrawal waits.
	_, err = suite.service.Withdraw(suite.ctx, checkingID, dec("75000"), "", admin)
	suite.Require().NoError(err)

	_, err = suite.service.ApproveTransaction(suite.ctx, txn.TransactionID, employee)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Equal(domain.StatusRejected, suite.storedStatus(txn.TransactionID))
	suite.assertBalance(checkingID, "25000")
}

func (suite *TransactionServiceTestSuite) TestApprove_CustomerCannotDecide() {
	txn, err := suite.service.Withdraw(suite.ctx, checkingID, dec("30000"), "", customer)
	suite.Require().NoError(err)

	_, err = suite.service.ApproveTransaction(suite.ctx, txn.TransactionID, customer)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)
}

func (suite *TransactionServiceTestSuite) TestDeny_RejectsWithoutTouchingBalance() {
	txn, err := suite.service.Withdraw(suite.ctx, checkingID, dec("30000"), "", customer)
	suite.Require().NoError(err)
	suite.publisher.reset()

	denied, err := suite.service.DenyTransaction(suite.ctx, txn.TransactionID, "suspicious", employee)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, denied.Status)
	suite.Equal("suspicious", denied.RejectionReason)
	suite.assertBalance(checkingID, "100000")
	suite.Equal([]domain.EventType{domain.EventTransactionRejected}, suite.publisher.types())

	_, err = suite.service.ApproveTransaction(suite.ctx, txn.TransactionID, admin)
	suite.ErrorIs(err, apperrors.ErrInvalidTransaction)
}

func (suite *TransactionServiceTestSuite) TestDecide_TerminalTransactions() {
	completed, err := suite.service.Transfer(suite.ctx, checkingID, otherID, dec("100"), "", customer)
	suite.Require().NoError(err)
	suite.Require().Equal(domain.StatusCompleted, completed.Status)

	_, err = suite.service.Withdraw(suite.ctx, savingsID, dec("1000"), "", customer)
	var failed *services.TransactionFailedError
	suite.Require().True(errors.As(err, &failed))
	rejected := failed.Transaction

	tests := []struct {
		name   string
		txn    domain.Transaction
		decide func(transactionID string) (*domain.Transaction, error)
	}{
		{
			name: "approve completed",
			txn:  *completed,
			decide: func(id string) (*domain.Transaction, error) {
				return suite.service.ApproveTransaction(suite.ctx, id, admin)
			},
		},
		{
			name: "deny completed",
			txn:  *completed,
			decide: func(id string) (*domain.Transaction, error) {
				return suite.service.DenyTransaction(suite.ctx, id, "too late", admin)
			},
		},
		{
			name: "deny rejected",
			txn:  rejected,
			decide: func(id string) (*domain.Transaction, error) {
				return suite.service.DenyTransaction(suite.ctx, id, "again", admin)
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.publisher.reset()

			got, err := tt.decide(tt.txn.TransactionID)

			suite.Nil(got)
			suite.ErrorIs(err, apperrors.ErrInvalidTransaction)
			suite.Equal(tt.txn.Status, suite.storedStatus(tt.txn.TransactionID))
			suite.assertBalance(checkingID, "99900")
			suite.assertBalance(otherID, "1100")
			suite.assertBalance(savingsID, "500")
			suite.Empty(suite.publisher.types())
		})
	}
}

func (suite *TransactionServiceTestSuite) TestDeposit_ConcurrentDepositsApplyOnce() {
	const n = 100
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := suite.service.Deposit(suite.ctx, otherID, dec("1.25"), "", customer); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		suite.NoError(err)
	}
	suite.assertBalance(otherID, "1125")
	count, err := suite.store.CountTransactions(suite.ctx, accountFilter(otherID))
	suite.Require().NoError(err)
	suite.Equal(n, count)
}

func (suite *TransactionServiceTestSuite) TestApprove_ConcurrentApprovalsExecuteOnce() {
	txn, err := suite.service.Withdraw(suite.ctx, checkingID, dec("30000"), "", customer)
	suite.Require().NoError(err)
	suite.Require().Equal(domain.StatusPending, txn.Status)

	approvers := []domain.Actor{employee, admin}
	results := make([]error, len(approvers))
	var wg sync.WaitGroup
	for i, approver := range approvers {
		wg.Add(1)
		go func(i int, approver domain.Actor) {
			defer wg.Done()
			_, results[i] = suite.service.ApproveTransaction(suite.ctx, txn.TransactionID, approver)
		}(i, approver)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.ErrorIs(err, apperrors.ErrInvalidTransaction)
	}
	suite.Equal(1, succeeded)
	suite.Equal(domain.StatusCompleted, suite.storedStatus(txn.TransactionID))
	suite.assertBalance(checkingID, "70000")
}

func (suite *TransactionServiceTestSuite) TestDeny_DefaultReason() {
	txn, err := suite.service.Withdraw(suite.ctx, checkingID, dec("30000"), "", customer)
	suite.Require().NoError(err)

	denied, err := suite.service.DenyTransaction(suite.ctx, txn.TransactionID, "", admin)
	suite.Require().NoError(err)
	suite.Equal("denied by adm-1", denied.RejectionReason)
}

func (suite *TransactionServiceTestSuite) TestListPendingApprovals_FiltersByAuthority() {
	small, err := suite.service.Withdraw(suite.ctx, checkingID, dec("30000"), "", customer)
	suite.Require().NoError(err)
	large, err := suite.service.Withdraw(suite.ctx, checkingID, dec("80000"), "", customer)
	suite.Require().NoError(err)

	forEmployee, err := suite.service.ListPendingApprovals(suite.ctx, employee)
	suite.Require().NoError(err)
	suite.Require().Len(forEmployee, 1)
	suite.Equal(small.TransactionID, forEmployee[0].TransactionID)

	forAdmin, err := suite.service.ListPendingApprovals(suite.ctx, admin)
	suite.Require().NoError(err)
	suite.Require().Len(forAdmin, 2)
	suite.Equal(large.TransactionID, forAdmin[0].TransactionID)

	forCustomer, err := suite.service.ListPendingApprovals(suite.ctx, customer)
	suite.Require().NoError(err)
	suite.Empty(forCustomer)
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_Visibility() {
	txn, err := suite.service.Deposit(suite.ctx, checkingID, dec("10"), "", customer)
	suite.Require().NoError(err)

	got, err := suite.service.GetTransaction(suite.ctx, txn.TransactionID, customer)
	suite.Require().NoError(err)
	suite.Equal(txn.TransactionID, got.TransactionID)

	_, err = suite.service.GetTransaction(suite.ctx, txn.TransactionID, otherCustomer)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)

	_, err = suite.service.GetTransaction(suite.ctx, txn.TransactionID, employee)
	suite.NoError(err)

	_, err = suite.service.GetTransaction(suite.ctx, "TXN_MISSING1", employee)
	suite.ErrorIs(err, apperrors.ErrTransactionNotFound)
}

func (suite *TransactionServiceTestSuite) TestListAccountTransactions_Paginates() {
	for i := 0; i < 5; i++ {
		_, err := suite.service.Deposit(suite.ctx, checkingID, dec("1"), "", customer)
		suite.Require().NoError(err)
	}

	first, err := suite.service.ListAccountTransactions(suite.ctx, checkingID, dto.ListTransactionsParams{Limit: 3}, customer)
	suite.Require().NoError(err)
	suite.Len(first.Transactions, 3)
	suite.Require().NotNil(first.NextToken)
	suite.True(first.Transactions[0].CreatedAt.After(first.Transactions[2].CreatedAt))

	second, err := suite.service.ListAccountTransactions(suite.ctx, checkingID, dto.ListTransactionsParams{Limit: 3, NextToken: first.NextToken}, customer)
	suite.Require().NoError(err)
	suite.Len(second.Transactions, 2)
	suite.Nil(second.NextToken)

	_, err = suite.service.ListAccountTransactions(suite.ctx, checkingID, dto.ListTransactionsParams{Limit: 3}, otherCustomer)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_CustomerMustNameAccount() {
	_, err := suite.service.ListTransactions(suite.ctx, dto.ListTransactionsParams{Limit: 10}, customer)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)

	_, err = suite.service.Deposit(suite.ctx, otherID, dec("5"), "", otherCustomer)
	suite.Require().NoError(err)
	all, err := suite.service.ListTransactions(suite.ctx, dto.ListTransactionsParams{Limit: 10}, employee)
	suite.Require().NoError(err)
	suite.Len(all.Transactions, 1)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
