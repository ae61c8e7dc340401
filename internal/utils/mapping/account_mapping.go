package mapping

import (
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		AccountType:     string(d.AccountType),
		OwnerID:         d.OwnerID,
		Balance:         d.Balance,
		ParentAccountID: nullString(d.ParentAccountID),
		State:           string(d.State),
		IsClosed:        d.IsClosed,
		CredentialHash:  nullString(d.CredentialHash),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		AccountType:     domain.AccountType(m.AccountType),
		OwnerID:         m.OwnerID,
		Balance:         m.Balance,
		ParentAccountID: m.ParentAccountID.String,
		State:           domain.AccountState(m.State),
		IsClosed:        m.IsClosed,
		CredentialHash:  m.CredentialHash.String,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
