package mapping

import (
	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/models"
)

// ToModelBankAccount converts a domain BankAccount to a model BankAccount.
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID: d.BankAccountID,
		UserID:        d.UserID,
		BankID:        d.BankID,
		AccountNumber: d.AccountNumber,
		AccountName:   d.AccountName,
		CurrencyCode:  d.CurrencyCode,
		Balance:       d.Balance,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
		DeletedAt:     d.DeletedAt,
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount.
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID: m.BankAccountID,
		UserID:        m.UserID,
		BankID:        m.BankID,
		AccountNumber: m.AccountNumber,
		AccountName:   m.AccountName,
		CurrencyCode:  m.CurrencyCode,
		Balance:       m.Balance,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		DeletedAt:     m.DeletedAt,
	}
}

// ToDomainBankAccountSlice converts a slice of model BankAccounts.
func ToDomainBankAccountSlice(ms []models.BankAccount) []domain.BankAccount {
	ds := make([]domain.BankAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankAccount(m)
	}
	return ds
}
