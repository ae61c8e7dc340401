package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/core/services"
	"github.com/SscSPs/bank_backoffice/internal/events"
	"github.com/SscSPs/bank_backoffice/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	container *portssvc.ServiceContainer
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()

	opened := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, account := range []domain.Account{
		domain.NewAccount(checkingID, domain.Checking, customer.UserID, dec("100000"), "", "seed", opened),
		domain.NewAccount(savingsID, domain.Savings, customer.UserID, dec("500"), "", "seed", opened),
		domain.NewAccount("ACC_LOAN0001", domain.Loan, customer.UserID, dec("-20000"), checkingID, "seed", opened),
	} {
		suite.Require().NoError(suite.store.SaveAccount(suite.ctx, account))
	}

	notifications := events.NewNotificationListener(10)
	bus := events.NewBus(events.NewAuditListener(suite.store), notifications)
	suite.container = services.NewServiceContainer(
		suite.store.Provider(),
		domain.DefaultApprovalPolicy(),
		notifications,
		services.WithEventPublisher(bus),
		services.WithClock(steppingClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))),
	)
}

func (suite *ReportingServiceTestSuite) TestDailyTransactionReport() {
	txns := suite.container.Transaction
	_, err := txns.Deposit(suite.ctx, checkingID, dec("100"), "", customer)
	suite.Require().NoError(err)
	_, err = txns.Withdraw(suite.ctx, checkingID, dec("30000"), "", customer)
	suite.Require().NoError(err)
	_, err = txns.Withdraw(suite.ctx, savingsID, dec("1000"), "", customer)
	suite.Require().Error(err)

	day := time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)
	report, err := suite.container.Reporting.DailyTransactionReport(suite.ctx, day, employee)
	suite.Require().NoError(err)

	suite.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), report.Date)
	suite.Equal(3, report.TotalTransactions)
	suite.Equal(1, report.ByType[domain.TransactionDeposit].Count)
	suite.Equal(2, report.ByType[domain.TransactionWithdrawal].Count)
	suite.True(dec("31000").Equal(report.ByType[domain.TransactionWithdrawal].Amount))
	suite.Equal(1, report.ByStatus[domain.StatusCompleted])
	suite.Equal(1, report.ByStatus[domain.StatusPending])
	suite.Equal(1, report.ByStatus[domain.StatusRejected])

	nextDay, err := suite.container.Reporting.DailyTransactionReport(suite.ctx, day.AddDate(0, 0, 1), admin)
	suite.Require().NoError(err)
	suite.Zero(nextDay.TotalTransactions)

	_, err = suite.container.Reporting.DailyTransactionReport(suite.ctx, day, customer)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)
}

func (suite *ReportingServiceTestSuite) TestAccountSummary() {
	for i := 0; i < 12; i++ {
		_, err := suite.container.Transaction.Deposit(suite.ctx, savingsID, dec("1"), "", customer)
		suite.Require().NoError(err)
	}

	summary, err := suite.container.Reporting.AccountSummary(suite.ctx, savingsID, customer)
	suite.Require().NoError(err)
	suite.Equal(12, summary.TransactionCount)
	suite.Len(summary.RecentTransactions, 10)
	suite.True(dec("512").Equal(summary.Account.Balance))

	_, err = suite.container.Reporting.AccountSummary(suite.ctx, savingsID, otherCustomer)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)
}

func (suite *ReportingServiceTestSuite) TestFinancialSummary() {
	_, err := suite.container.Financials.UpdateRetainedEarnings(suite.ctx, dec("1000"), dec("250"), admin)
	suite.Require().NoError(err)

	summary, err := suite.container.Reporting.FinancialSummary(suite.ctx, admin)
	suite.Require().NoError(err)
	suite.True(dec("100500").Equal(summary.TotalDeposits))
	suite.True(dec("20000").Equal(summary.TotalLoans))
	suite.True(dec("750").Equal(summary.RetainedEarnings))
	suite.Equal(3, summary.TotalAccounts)
	suite.Equal(3, summary.ActiveAccounts)

	_, err = suite.container.Reporting.FinancialSummary(suite.ctx, employee)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)
}

func (suite *ReportingServiceTestSuite) TestRetainedEarnings() {
	financials := suite.container.Financials

	initial, err := financials.GetRetainedEarnings(suite.ctx, employee)
	suite.Require().NoError(err)
	suite.True(initial.RetainedEarnings.IsZero())

	_, err = financials.UpdateRetainedEarnings(suite.ctx, dec("1000"), dec("250"), admin)
	suite.Require().NoError(err)
	updated, err := financials.UpdateRetainedEarnings(suite.ctx, dec("-300"), dec("0"), admin)
	suite.Require().NoError(err)
	suite.True(dec("450").Equal(updated.RetainedEarnings))
	suite.Equal(admin.UserID, updated.LastUpdatedBy)

	_, err = financials.UpdateRetainedEarnings(suite.ctx, dec("10"), dec("-1"), admin)
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = financials.UpdateRetainedEarnings(suite.ctx, dec("10.005"), dec("0"), admin)
	suite.ErrorIs(err, apperrors.ErrValidation)
	unchanged, err := financials.GetRetainedEarnings(suite.ctx, admin)
	suite.Require().NoError(err)
	suite.True(dec("450").Equal(unchanged.RetainedEarnings))
	_, err = financials.UpdateRetainedEarnings(suite.ctx, dec("10"), dec("0"), employee)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)
	_, err = financials.GetRetainedEarnings(suite.ctx, customer)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)
}

func (suite *ReportingServiceTestSuite) TestAuditLogAndNotifications() {
	_, err := suite.container.Transaction.Deposit(suite.ctx, checkingID, dec("100"), "", customer)
	suite.Require().NoError(err)

	entries, err := suite.container.Reporting.AuditLog(suite.ctx, 10, 0, employee)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal(domain.EventTransactionCompleted, entries[0].EventType)
	suite.Equal(domain.EventBalanceChanged, entries[1].EventType)
	suite.Equal(checkingID, entries[1].AggregateID)

	_, err = suite.container.Reporting.AuditLog(suite.ctx, 10, 0, customer)
	suite.ErrorIs(err, apperrors.ErrUnauthorizedAccess)

	notes, err := suite.container.Notifications.ListNotifications(suite.ctx, customer, 10)
	suite.Require().NoError(err)
	suite.NotEmpty(notes)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
