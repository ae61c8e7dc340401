package domain

import (
	"fmt"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
)

// Actor identifies who is performing an operation. It is passed explicitly
// to every service call.
type Actor struct {
	UserID string
	Role   Role
	// AuthenticatedAccountID is set when the session was opened with an
	// account credential rather than a user login.
	AuthenticatedAccountID string
}

// SystemActor is used for work not initiated by a person.
var SystemActor = Actor{UserID: "System", Role: RoleAdmin}

// IsAccountSession reports whether the actor is bound to a single account.
func (a Actor) IsAccountSession() bool {
	return a.AuthenticatedAccountID != ""
}

// AuthorizeAccountAccess checks that the actor may debit or inspect the account.
// Account sessions are limited to their own account, customers to accounts
// they own; staff may act on any account.
func AuthorizeAccountAccess(actor Actor, account Account) error {
	if !actor.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrUnauthorizedAccess, actor.Role)
	}
	if actor.IsAccountSession() {
		if actor.AuthenticatedAccountID != account.AccountID {
			return fmt.Errorf("%w: session is bound to account %s", apperrors.ErrUnauthorizedAccess, actor.AuthenticatedAccountID)
		}
		return nil
	}
	if actor.Role == RoleCustomer && account.OwnerID != actor.UserID {
		return fmt.Errorf("%w: account %s is not owned by %s", apperrors.ErrUnauthorizedAccess, account.AccountID, actor.UserID)
	}
	return nil
}

// RequireStaff fails unless the actor is an Employee or Admin.
func RequireStaff(actor Actor) error {
	if !actor.Role.IsStaff() || actor.IsAccountSession() {
		return fmt.Errorf("%w: staff role required", apperrors.ErrUnauthorizedAccess)
	}
	return nil
}

// RequireAdmin fails unless the actor is an Admin.
func RequireAdmin(actor Actor) error {
	if actor.Role != RoleAdmin || actor.IsAccountSession() {
		return fmt.Errorf("%w: admin role required", apperrors.ErrUnauthorizedAccess)
	}
	return nil
}
