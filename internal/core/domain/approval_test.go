package domain_test

import (
	"testing"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalPolicy_Evaluate(t *testing.T) {
	policy := domain.DefaultApprovalPolicy()

	tests := []struct {
		name         string
		amount       int64
		role         domain.Role
		wantOutcome  domain.ApprovalOutcome
		wantApprover string
	}{
		{"auto at threshold", 25000, domain.RoleCustomer, domain.OutcomeAutoApproved, "System"},
		{"auto small admin", 10, domain.RoleAdmin, domain.OutcomeAutoApproved, "System"},
		{"customer above auto", 25001, domain.RoleCustomer, domain.OutcomePending, ""},
		{"employee in role band", 50000, domain.RoleEmployee, domain.OutcomeRoleApproved, "Employee"},
		{"admin in role band", 75000, domain.RoleAdmin, domain.OutcomeRoleApproved, "Admin"},
		{"employee above role band", 75001, domain.RoleEmployee, domain.OutcomePending, ""},
		{"customer above role band", 100000, domain.RoleCustomer, domain.OutcomePending, ""},
		{"admin above role band", 100000, domain.RoleAdmin, domain.OutcomeRoleApproved, "Admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := policy.Evaluate(decimal.NewFromInt(tt.amount), tt.role)
			assert.Equal(t, tt.wantOutcome, d.Outcome)
			assert.Equal(t, tt.wantApprover, d.Approver)
			assert.Equal(t, tt.wantOutcome != domain.OutcomePending, d.Approved())
		})
	}
}

func TestApprovalPolicy_PendingRequiredRole(t *testing.T) {
	policy := domain.DefaultApprovalPolicy()
	assert.Equal(t, domain.RoleEmployee, policy.Evaluate(decimal.NewFromInt(30000), domain.RoleCustomer).RequiredRole)
	assert.Equal(t, domain.RoleAdmin, policy.Evaluate(decimal.NewFromInt(80000), domain.RoleEmployee).RequiredRole)
}

func TestApprovalPolicy_AuthorizeManualDecision(t *testing.T) {
	policy := domain.DefaultApprovalPolicy()
	employee := domain.Actor{UserID: "emp-1", Role: domain.RoleEmployee}
	admin := domain.Actor{UserID: "adm-1", Role: domain.RoleAdmin}
	customer := domain.Actor{UserID: "cus-1", Role: domain.RoleCustomer}

	assert.NoError(t, policy.AuthorizeManualDecision(decimal.NewFromInt(75000), employee))
	assert.ErrorIs(t, policy.AuthorizeManualDecision(decimal.NewFromInt(75001), employee), apperrors.ErrUnauthorizedAccess)
	assert.NoError(t, policy.AuthorizeManualDecision(decimal.NewFromInt(1000000), admin))
	assert.ErrorIs(t, policy.AuthorizeManualDecision(decimal.NewFromInt(1), customer), apperrors.ErrUnauthorizedAccess)
}

func TestNewApprovalPolicy_Validation(t *testing.T) {
	_, err := domain.NewApprovalPolicy(decimal.NewFromInt(100), decimal.NewFromInt(100))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewApprovalPolicy(decimal.Zero, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	p, err := domain.NewApprovalPolicy(decimal.NewFromInt(10), decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePending, p.Evaluate(decimal.NewFromInt(15), domain.RoleCustomer).Outcome)
}
