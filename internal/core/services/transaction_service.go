package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

const pendingScanPageSize = 100

// TransactionFailedError reports a transaction that was recorded and then
// rejected because it could not execute. Unwrap yields the failure kind.
type TransactionFailedError struct {
	Transaction domain.Transaction
	Err         error
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction %s rejected: %v", e.Transaction.TransactionID, e.Err)
}

func (e *TransactionFailedError) Unwrap() error {
	return e.Err
}

// transactionService accepts deposits, withdrawals and transfers, routes them
// through the approval chain and executes approved ones atomically.
type transactionService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	txnRepo     portsrepo.TransactionRepositoryFacade
	uow         portsrepo.UnitOfWork
	policy      *domain.ApprovalPolicy
}

// NewTransactionService creates the transaction orchestrator.
func NewTransactionService(repos portsrepo.RepositoryProvider, policy *domain.ApprovalPolicy, options ...ServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		accountRepo: repos.AccountRepo,
		txnRepo:     repos.TransactionRepo,
		uow:         repos.UnitOfWork,
		policy:      policy,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if !domain.HasAmountScale(amount) {
		return fmt.Errorf("%w: %s has more than %d decimal places", apperrors.ErrInvalidAmount, amount.String(), domain.AmountScale)
	}
	return nil
}

func (s *transactionService) findAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		s.LogError(ctx, err, "Failed to load account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *transactionService) findTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, transactionID)
		}
		s.LogError(ctx, err, "Failed to load transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// Deposit credits an account. Anyone may deposit into any account.
func (s *transactionService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, domain.TransactionDeposit, account, nil, amount, description, actor)
}

// Withdraw debits an account the actor is allowed to operate.
func (s *transactionService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeAccountAccess(actor, *account); err != nil {
		s.LogInfo(ctx, "Withdrawal refused", slog.String("account_id", accountID), slog.String("user_id", actor.UserID))
		return nil, err
	}
	return s.submit(ctx, domain.TransactionWithdrawal, account, nil, amount, description, actor)
}

// Transfer moves funds from source to target.
func (s *transactionService) Transfer(ctx context.Context, sourceAccountID, targetAccountID string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if sourceAccountID == targetAccountID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSameAccount, sourceAccountID)
	}
	source, err := s.findAccount(ctx, sourceAccountID)
	if err != nil {
		return nil, err
	}
	target, err := s.findAccount(ctx, targetAccountID)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeAccountAccess(actor, *source); err != nil {
		s.LogInfo(ctx, "Transfer refused", slog.String("source_account_id", sourceAccountID), slog.String("user_id", actor.UserID))
		return nil, err
	}
	return s.submit(ctx, domain.TransactionTransfer, source, target, amount, description, actor)
}

// submit records a pending transaction, applies the state pre-check and the
// approval chain, and executes it when approved.
func (s *transactionService) submit(ctx context.Context, txnType domain.TransactionType, source, target *domain.Account, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Transaction, error) {
	targetID := ""
	if target != nil {
		targetID = target.AccountID
	}
	txn := domain.NewTransaction(domain.NewTransactionID(), txnType, source.AccountID, targetID, amount, description, actor.UserID, s.Now())
	if err := s.txnRepo.CreateTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to record transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	logger := s.GetLogger(ctx).With(
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txnType)),
		slog.String("amount", amount.String()),
	)

	if err := precheckStates(txnType, source, target); err != nil {
		logger.Info("Transaction blocked by account state", slog.String("reason", err.Error()))
		return s.rejectRecorded(ctx, txn.TransactionID, source.OwnerID, err, actor)
	}

	decision := s.policy.Evaluate(amount, actor.Role)
	if !decision.Approved() {
		logger.Info("Transaction awaiting manual approval", slog.String("required_role", string(decision.RequiredRole)))
		s.Publish(ctx, domain.TransactionPendingEvent{
			BaseEvent:     domain.BaseEvent{Timestamp: s.Now(), Actor: actor.UserID},
			TransactionID: txn.TransactionID,
			AccountID:     txn.AccountID,
			OwnerID:       source.OwnerID,
			Amount:        amount,
			RequiredRole:  decision.RequiredRole,
		})
		return &txn, nil
	}

	logger.Debug("Transaction approved by chain", slog.String("tier", decision.Tier), slog.String("approver", decision.Approver))
	result, err := s.execute(ctx, txn.TransactionID, decision.Approver, actor, false)
	var failed *TransactionFailedError
	if err != nil && !errors.As(err, &failed) {
		s.abandon(ctx, txn.TransactionID, source.OwnerID, err, actor)
	}
	return result, err
}

// abandon rejects an auto-approved transaction whose execution aborted, so it
// does not linger as PENDING in the approval queue.
func (s *transactionService) abandon(ctx context.Context, transactionID, ownerID string, cause error, actor domain.Actor) {
	rejected, err := s.reject(ctx, transactionID, fmt.Sprintf("execution aborted: %v", cause))
	if err != nil {
		s.LogError(ctx, err, "Failed to reject aborted transaction", slog.String("transaction_id", transactionID))
		return
	}
	s.Publish(ctx, s.rejectedEvent(*rejected, ownerID, actor))
}

func precheckStates(txnType domain.TransactionType, source, target *domain.Account) error {
	switch txnType {
	case domain.TransactionDeposit:
		return source.CheckPermits(domain.OpDeposit)
	case domain.TransactionWithdrawal:
		return source.CheckPermits(domain.OpWithdraw)
	case domain.TransactionTransfer:
		if err := source.CheckPermits(domain.OpTransferOut); err != nil {
			return err
		}
		return target.CheckPermits(domain.OpDeposit)
	}
	return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrInvalidTransaction, txnType)
}

// execute runs the legs of a pending transaction inside one unit of work.
// A leg failure commits only the REJECTED status.
func (s *transactionService) execute(ctx context.Context, transactionID, approver string, actor domain.Actor, manual bool) (*domain.Transaction, error) {
	var (
		result  domain.Transaction
		ownerID string
		events  []domain.Event
		execErr error
	)

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repo portsrepo.TxRepository) error {
		txn, err := repo.FindTransactionByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		now := s.Now()
		if err := txn.Approve(approver, now); err != nil {
			return err
		}

		accounts, err := repo.FindAccountsByIDsForUpdate(ctx, txn.AccountIDs())
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		ownerID = accounts[txn.AccountID].OwnerID

		var changed []domain.Account
		var balanceEvents []domain.Event
		if err == nil {
			changed, balanceEvents, err = applyLegs(txn, accounts, actor, now)
		} else {
			err = fmt.Errorf("%w: %v", apperrors.ErrAccountNotFound, err)
		}
		if err != nil {
			execErr = err
			if rejectErr := txn.Reject(err.Error()); rejectErr != nil {
				return rejectErr
			}
			if err := repo.UpdateTransactionInTx(ctx, *txn); err != nil {
				return err
			}
			result = *txn
			return nil
		}

		if err := repo.UpdateAccountsInTx(ctx, changed...); err != nil {
			return err
		}
		if err := txn.Complete(); err != nil {
			return err
		}
		if err := repo.UpdateTransactionInTx(ctx, *txn); err != nil {
			return err
		}
		result = *txn

		base := domain.BaseEvent{Timestamp: now, Actor: actor.UserID}
		if manual {
			events = append(events, domain.TransactionApprovedEvent{
				BaseEvent:     base,
				TransactionID: txn.TransactionID,
				Approver:      approver,
				Amount:        txn.Amount,
				OwnerID:       ownerID,
			})
		}
		events = append(events, balanceEvents...)
		events = append(events, domain.TransactionCompletedEvent{BaseEvent: base, Transaction: *txn, OwnerID: ownerID})
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Transaction execution aborted", slog.String("transaction_id", transactionID))
		if errors.Is(err, apperrors.ErrInvalidTransaction) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to execute transaction %s: %w", transactionID, err)
	}

	if execErr != nil {
		s.LogInfo(ctx, "Transaction rejected during execution", slog.String("transaction_id", transactionID), slog.String("reason", execErr.Error()))
		s.Publish(ctx, s.rejectedEvent(result, ownerID, actor))
		return nil, &TransactionFailedError{Transaction: result, Err: execErr}
	}

	s.LogInfo(ctx, "Transaction completed", slog.String("transaction_id", transactionID), slog.String("approved_by", approver))
	s.Publish(ctx, events...)
	return &result, nil
}

// applyLegs mutates the locked accounts for txn and returns the accounts to
// persist with their balance events, source first.
func applyLegs(txn *domain.Transaction, accounts map[string]domain.Account, actor domain.Actor, now time.Time) ([]domain.Account, []domain.Event, error) {
	source, ok := accounts[txn.AccountID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, txn.AccountID)
	}

	var err error
	before := source.Balance
	switch txn.Type {
	case domain.TransactionDeposit:
		err = source.Deposit(txn.Amount)
	case domain.TransactionWithdrawal:
		err = source.Withdraw(txn.Amount)
	case domain.TransactionTransfer:
		err = source.TransferOut(txn.Amount)
	default:
		err = fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrInvalidTransaction, txn.Type)
	}
	if err != nil {
		return nil, nil, err
	}
	source.LastUpdatedAt = now
	source.LastUpdatedBy = actor.UserID

	changed := []domain.Account{source}
	events := []domain.Event{balanceChanged(source, before, txn.TransactionID, actor, now)}

	if txn.Type == domain.TransactionTransfer {
		target, ok := accounts[txn.TargetAccountID]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, txn.TargetAccountID)
		}
		targetBefore := target.Balance
		if err := target.Deposit(txn.Amount); err != nil {
			return nil, nil, err
		}
		target.LastUpdatedAt = now
		target.LastUpdatedBy = actor.UserID
		changed = append(changed, target)
		events = append(events, balanceChanged(target, targetBefore, txn.TransactionID, actor, now))
	}

	return changed, events, nil
}

func balanceChanged(account domain.Account, before decimal.Decimal, transactionID string, actor domain.Actor, now time.Time) domain.BalanceChangedEvent {
	return domain.BalanceChangedEvent{
		BaseEvent:       domain.BaseEvent{Timestamp: now, Actor: actor.UserID},
		AccountID:       account.AccountID,
		OwnerID:         account.OwnerID,
		TransactionID:   transactionID,
		PreviousBalance: before,
		NewBalance:      account.Balance,
	}
}

func (s *transactionService) rejectedEvent(txn domain.Transaction, ownerID string, actor domain.Actor) domain.TransactionRejectedEvent {
	return domain.TransactionRejectedEvent{
		BaseEvent:     domain.BaseEvent{Timestamp: s.Now(), Actor: actor.UserID},
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		OwnerID:       ownerID,
		Amount:        txn.Amount,
		Reason:        txn.RejectionReason,
	}
}

// rejectRecorded marks a recorded transaction REJECTED because of cause and
// returns cause wrapped in a TransactionFailedError.
func (s *transactionService) rejectRecorded(ctx context.Context, transactionID, ownerID string, cause error, actor domain.Actor) (*domain.Transaction, error) {
	rejected, err := s.reject(ctx, transactionID, cause.Error())
	if err != nil {
		s.LogError(ctx, err, "Failed to record transaction rejection", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("%w (rejection not recorded: %v)", cause, err)
	}
	s.Publish(ctx, s.rejectedEvent(*rejected, ownerID, actor))
	return nil, &TransactionFailedError{Transaction: *rejected, Err: cause}
}

func (s *transactionService) reject(ctx context.Context, transactionID, reason string) (*domain.Transaction, error) {
	var rejected domain.Transaction
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repo portsrepo.TxRepository) error {
		txn, err := repo.FindTransactionByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if err := txn.Reject(reason); err != nil {
			return err
		}
		if err := repo.UpdateTransactionInTx(ctx, *txn); err != nil {
			return err
		}
		rejected = *txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rejected, nil
}

// loadPendingForDecision fetches a transaction and checks that actor may decide on it.
func (s *transactionService) loadPendingForDecision(ctx context.Context, transactionID string, actor domain.Actor) (*domain.Transaction, error) {
	txn, err := s.findTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: transaction %s is %s, not pending", apperrors.ErrInvalidTransaction, transactionID, txn.Status)
	}
	if err := s.policy.AuthorizeManualDecision(txn.Amount, actor); err != nil {
		s.LogInfo(ctx, "Manual decision refused", slog.String("transaction_id", transactionID), slog.String("user_id", actor.UserID), slog.String("role", string(actor.Role)))
		return nil, err
	}
	return txn, nil
}

// ApproveTransaction approves a pending transaction and executes it.
func (s *transactionService) ApproveTransaction(ctx context.Context, transactionID string, actor domain.Actor) (*domain.Transaction, error) {
	if _, err := s.loadPendingForDecision(ctx, transactionID, actor); err != nil {
		return nil, err
	}
	return s.execute(ctx, transactionID, actor.UserID, actor, true)
}

// DenyTransaction rejects a pending transaction without touching balances.
func (s *transactionService) DenyTransaction(ctx context.Context, transactionID string, reason string, actor domain.Actor) (*domain.Transaction, error) {
	txn, err := s.loadPendingForDecision(ctx, transactionID, actor)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		reason = fmt.Sprintf("denied by %s", actor.UserID)
	}

	rejected, err := s.reject(ctx, transactionID, reason)
	if err != nil {
		s.LogError(ctx, err, "Failed to deny transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	ownerID := ""
	if account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID); err == nil {
		ownerID = account.OwnerID
	}
	s.LogInfo(ctx, "Transaction denied", slog.String("transaction_id", transactionID), slog.String("denied_by", actor.UserID))
	s.Publish(ctx, s.rejectedEvent(*rejected, ownerID, actor))
	return rejected, nil
}

// ListPendingApprovals returns the pending transactions actor may decide on.
func (s *transactionService) ListPendingApprovals(ctx context.Context, actor domain.Actor) ([]domain.Transaction, error) {
	pending := []domain.Transaction{}
	if !actor.Role.IsStaff() || actor.IsAccountSession() {
		return pending, nil
	}

	filter := portsrepo.TransactionFilter{Status: domain.StatusPending, Limit: pendingScanPageSize}
	for {
		page, next, err := s.txnRepo.ListTransactions(ctx, filter)
		if err != nil {
			s.LogError(ctx, err, "Failed to list pending transactions")
			return nil, fmt.Errorf("failed to list pending transactions: %w", err)
		}
		for _, txn := range page {
			if s.policy.CanDecide(txn.Amount, actor.Role) {
				pending = append(pending, txn)
			}
		}
		if next == nil {
			break
		}
		filter.NextToken = next
	}
	return pending, nil
}

// GetTransaction returns a transaction if the actor may see one of its accounts.
func (s *transactionService) GetTransaction(ctx context.Context, transactionID string, actor domain.Actor) (*domain.Transaction, error) {
	txn, err := s.findTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if actor.Role.IsStaff() && !actor.IsAccountSession() {
		return txn, nil
	}

	var accessErr error
	for _, accountID := range txn.AccountIDs() {
		account, err := s.findAccount(ctx, accountID)
		if err != nil {
			accessErr = err
			continue
		}
		if accessErr = domain.AuthorizeAccountAccess(actor, *account); accessErr == nil {
			return txn, nil
		}
	}
	if errors.Is(accessErr, apperrors.ErrNotFound) || accessErr == nil {
		accessErr = fmt.Errorf("%w: transaction %s", apperrors.ErrUnauthorizedAccess, transactionID)
	}
	return nil, accessErr
}

// ListTransactions lists transactions across the bank for staff. Other actors
// must name an account they may access.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams, actor domain.Actor) (*dto.ListTransactionsResponse, error) {
	if !actor.Role.IsStaff() || actor.IsAccountSession() {
		if params.AccountID == "" {
			return nil, fmt.Errorf("%w: accountID is required", apperrors.ErrUnauthorizedAccess)
		}
		return s.ListAccountTransactions(ctx, params.AccountID, params, actor)
	}
	return s.listTransactions(ctx, params)
}

// ListAccountTransactions lists the transactions touching one account.
func (s *transactionService) ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams, actor domain.Actor) (*dto.ListTransactionsResponse, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeAccountAccess(actor, *account); err != nil {
		return nil, err
	}
	params.AccountID = accountID
	return s.listTransactions(ctx, params)
}

func (s *transactionService) listTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	txns, next, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{
		AccountID: params.AccountID,
		Status:    params.Status,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", params.AccountID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	s.LogDebug(ctx, "Listed transactions", slog.Int("count", len(txns)), slog.Bool("has_more", next != nil))
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    next,
	}, nil
}
