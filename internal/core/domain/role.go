package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
)

// Role is the back-office role an actor acts under.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether r belongs to bank personnel.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// DisplayName is the label recorded as approver when a role tier approves.
func (r Role) DisplayName() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleEmployee:
		return "Employee"
	case RoleAdmin:
		return "Admin"
	}
	return string(r)
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, s)
	}
	return r, nil
}
