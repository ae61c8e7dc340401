package domain

import (
	"fmt"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Default approval thresholds.
var (
	DefaultAutoApproveThreshold = decimal.NewFromInt(25000)
	DefaultRoleApproveThreshold = decimal.NewFromInt(75000)
)

// SystemApprover is recorded for auto-approved transactions.
const SystemApprover = "System"

// ApprovalOutcome is the transient result of running the approval chain.
type ApprovalOutcome string

const (
	OutcomeAutoApproved ApprovalOutcome = "AUTO_APPROVED"
	OutcomeRoleApproved ApprovalOutcome = "ROLE_APPROVED"
	OutcomePending      ApprovalOutcome = "PENDING"
)

// ApprovalDecision is what the chain decided for one transaction.
type ApprovalDecision struct {
	Outcome  ApprovalOutcome
	Approver string
	Tier     string
	// RequiredRole is the least role able to resolve a pending decision.
	RequiredRole Role
}

// Approved reports whether the transaction may execute immediately.
func (d ApprovalDecision) Approved() bool {
	return d.Outcome != OutcomePending
}

// ApprovalTier is one rule of the chain. Covers selects the amount band the
// tier is responsible for; Decide returns the approver label or false when
// the role cannot approve in this band.
type ApprovalTier struct {
	Name         string
	RequiredRole Role
	Covers       func(amount decimal.Decimal) bool
	Decide       func(role Role) (approver string, ok bool)
	Outcome      ApprovalOutcome
}

// ApprovalPolicy is the ordered approval chain plus the thresholds it was built from.
type ApprovalPolicy struct {
	AutoThreshold decimal.Decimal
	RoleThreshold decimal.Decimal
	tiers         []ApprovalTier
}

// NewApprovalPolicy builds the three-tier chain: auto, role, admin.
func NewApprovalPolicy(autoThreshold, roleThreshold decimal.Decimal) (*ApprovalPolicy, error) {
	if !autoThreshold.IsPositive() || !roleThreshold.IsPositive() {
		return nil, fmt.Errorf("%w: approval thresholds must be positive", apperrors.ErrValidation)
	}
	if !autoThreshold.LessThan(roleThreshold) {
		return nil, fmt.Errorf("%w: auto threshold %s must be below role threshold %s", apperrors.ErrValidation, autoThreshold, roleThreshold)
	}

	tiers := []ApprovalTier{
		{
			Name:    "auto",
			Outcome: OutcomeAutoApproved,
			Covers:  func(amount decimal.Decimal) bool { return amount.LessThanOrEqual(autoThreshold) },
			Decide:  func(Role) (string, bool) { return SystemApprover, true },
		},
		{
			Name:         "role",
			RequiredRole: RoleEmployee,
			Outcome:      OutcomeRoleApproved,
			Covers: func(amount decimal.Decimal) bool {
				return amount.GreaterThan(autoThreshold) && amount.LessThanOrEqual(roleThreshold)
			},
			Decide: func(role Role) (string, bool) {
				if role.IsStaff() {
					return role.DisplayName(), true
				}
				return "", false
			},
		},
		{
			Name:         "admin",
			RequiredRole: RoleAdmin,
			Outcome:      OutcomeRoleApproved,
			Covers:       func(amount decimal.Decimal) bool { return amount.GreaterThan(roleThreshold) },
			Decide: func(role Role) (string, bool) {
				if role == RoleAdmin {
					return RoleAdmin.DisplayName(), true
				}
				return "", false
			},
		},
	}

	return &ApprovalPolicy{AutoThreshold: autoThreshold, RoleThreshold: roleThreshold, tiers: tiers}, nil
}

// DefaultApprovalPolicy builds the chain with the default thresholds.
func DefaultApprovalPolicy() *ApprovalPolicy {
	p, err := NewApprovalPolicy(DefaultAutoApproveThreshold, DefaultRoleApproveThreshold)
	if err != nil {
		panic(err)
	}
	return p
}

// Evaluate runs the chain once. Only the tier whose band covers the amount
// is consulted; the chain never rejects.
func (p *ApprovalPolicy) Evaluate(amount decimal.Decimal, role Role) ApprovalDecision {
	for _, tier := range p.tiers {
		if !tier.Covers(amount) {
			continue
		}
		if approver, ok := tier.Decide(role); ok {
			return ApprovalDecision{Outcome: tier.Outcome, Approver: approver, Tier: tier.Name}
		}
		return ApprovalDecision{Outcome: OutcomePending, Tier: tier.Name, RequiredRole: tier.RequiredRole}
	}
	return ApprovalDecision{Outcome: OutcomePending, RequiredRole: RoleAdmin}
}

// CanDecide reports whether role may manually approve or deny amount.
func (p *ApprovalPolicy) CanDecide(amount decimal.Decimal, role Role) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleEmployee:
		return amount.LessThanOrEqual(p.RoleThreshold)
	}
	return false
}

// AuthorizeManualDecision fails with ErrUnauthorizedAccess when the actor may
// not resolve a pending transaction of this amount.
func (p *ApprovalPolicy) AuthorizeManualDecision(amount decimal.Decimal, actor Actor) error {
	if actor.IsAccountSession() || !p.CanDecide(amount, actor.Role) {
		return fmt.Errorf("%w: %s cannot decide on amount %s", apperrors.ErrUnauthorizedAccess, actor.Role.DisplayName(), amount.StringFixed(2))
	}
	return nil
}
