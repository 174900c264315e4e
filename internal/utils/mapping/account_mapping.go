package mapping

import (
	"github.com/finken/finken_backend/internal/core/domain"
	"github.com/finken/finken_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		AccountNumber:  d.AccountNumber,
		AccountName:    d.AccountName,
		Description:    d.Description,
		NormalSide:     models.EntrySide(d.NormalSide),
		Category:       models.AccountCategory(d.Category),
		Subcategory:    d.Subcategory,
		InitialBalance: d.InitialBalance,
		Balance:        d.Balance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		AccountNumber:  m.AccountNumber,
		AccountName:    m.AccountName,
		Description:    m.Description,
		NormalSide:     domain.EntrySide(m.NormalSide),
		Category:       domain.AccountCategory(m.Category),
		Subcategory:    m.Subcategory,
		InitialBalance: m.InitialBalance,
		Balance:        m.Balance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
