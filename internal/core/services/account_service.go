package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/utils"
)

// accountService manages account lifecycle and account-credential login.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	uow         portsrepo.UnitOfWork
}

// NewAccountService creates a new account service.
func NewAccountService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repos.AccountRepo,
		uow:         repos.UnitOfWork,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new account in the ACTIVE state.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	if err := domain.RequireStaff(actor); err != nil {
		return nil, err
	}
	accountType, err := domain.ParseAccountType(string(req.AccountType))
	if err != nil {
		return nil, err
	}
	if req.OwnerID == "" {
		return nil, fmt.Errorf("%w: ownerID is required", apperrors.ErrValidation)
	}
	if req.InitialBalance.IsNegative() && !accountType.IsLoan() {
		return nil, fmt.Errorf("%w: only loan accounts may open with a negative balance", apperrors.ErrValidation)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent %s", apperrors.ErrAccountNotFound, parentID)
			}
			return nil, fmt.Errorf("failed to load parent account %s: %w", parentID, err)
		}
	}

	account := domain.NewAccount(domain.NewAccountID(), accountType, req.OwnerID, req.InitialBalance.Round(2), parentID, actor.UserID, s.Now())
	if req.Credential != "" {
		hash, err := utils.HashCredential(req.Credential)
		if errors.Is(err, utils.ErrWeakCredential) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		if err != nil {
			s.LogError(ctx, err, "Failed to hash account credential")
			return nil, fmt.Errorf("failed to hash account credential: %w", err)
		}
		account.CredentialHash = hash
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account in repository", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("owner_id", account.OwnerID))
	s.Publish(ctx, domain.AccountStateChangedEvent{
		BaseEvent: domain.BaseEvent{Timestamp: account.CreatedAt, Actor: actor.UserID},
		AccountID: account.AccountID,
		OwnerID:   account.OwnerID,
		To:        account.State,
	})
	return &account, nil
}

// GetAccountByID returns the account if the actor may see it.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, actor domain.Actor) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		s.LogError(ctx, err, "Failed to find account by ID in repository", slog.String("account_id", accountID))
		return nil, err
	}
	if err := domain.AuthorizeAccountAccess(actor, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts lists accounts visible to the actor.
func (s *accountService) ListAccounts(ctx context.Context, actor domain.Actor, limit int, offset int) ([]domain.Account, error) {
	if actor.IsAccountSession() {
		account, err := s.GetAccountByID(ctx, actor.AuthenticatedAccountID, actor)
		if err != nil {
			return nil, err
		}
		return []domain.Account{*account}, nil
	}

	ownerID := ""
	if !actor.Role.IsStaff() {
		ownerID = actor.UserID
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, ownerID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ChangeAccountState moves an account to a new state under a row lock.
func (s *accountService) ChangeAccountState(ctx context.Context, accountID string, state domain.AccountState, actor domain.Actor) (*domain.Account, error) {
	if err := domain.RequireStaff(actor); err != nil {
		return nil, err
	}
	state, err := domain.ParseAccountState(string(state))
	if err != nil {
		return nil, err
	}

	var (
		updated  domain.Account
		previous domain.AccountState
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repo portsrepo.TxRepository) error {
		accounts, err := repo.FindAccountsByIDsForUpdate(ctx, []string{accountID})
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
			}
			return err
		}
		account := accounts[accountID]
		previous = account.State
		if err := account.TransitionTo(state, actor.UserID, s.Now()); err != nil {
			return err
		}
		if err := repo.UpdateAccountsInTx(ctx, account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidStateTransition) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to change account state", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account state changed",
		slog.String("account_id", accountID),
		slog.String("from", string(previous)),
		slog.String("to", string(updated.State)))
	if previous != updated.State {
		s.Publish(ctx, domain.AccountStateChangedEvent{
			BaseEvent: domain.BaseEvent{Timestamp: updated.LastUpdatedAt, Actor: actor.UserID},
			AccountID: updated.AccountID,
			OwnerID:   updated.OwnerID,
			From:      previous,
			To:        updated.State,
		})
	}
	return &updated, nil
}

// AuthenticateAccount verifies the credential of an open account.
func (s *accountService) AuthenticateAccount(ctx context.Context, accountID string, credential string) (*domain.Account, error) {
	invalid := fmt.Errorf("%w: invalid account credentials", apperrors.ErrUnauthorizedAccess)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalid
		}
		s.LogError(ctx, err, "Failed to load account for login", slog.String("account_id", accountID))
		return nil, err
	}
	if account.IsClosed || account.CredentialHash == "" {
		s.LogInfo(ctx, "Account login refused", slog.String("account_id", accountID), slog.Bool("closed", account.IsClosed))
		return nil, invalid
	}
	if !utils.CheckCredential(credential, account.CredentialHash) {
		s.LogInfo(ctx, "Account login with wrong credential", slog.String("account_id", accountID))
		return nil, invalid
	}
	return account, nil
}
