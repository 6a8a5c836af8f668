package mapping

import (
	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:    d.TransactionID,
		Reference:        d.Reference,
		UserID:           d.UserID,
		BankAccountID:    d.BankAccountID,
		PaymentMethodID:  d.PaymentMethodID,
		Type:             models.TransactionType(d.Type),
		Amount:           d.Amount,
		CurrencyCode:     d.CurrencyCode,
		Status:           models.TransactionStatus(d.Status),
		Gateway:          string(d.Gateway),
		GatewayReference: d.GatewayReference,
		StartBalance:     d.StartBalance,
		EndBalance:       d.EndBalance,
		Description:      d.Description,
		AuditFields:      ToModelAuditFields(d.AuditFields),
		DeletedAt:        d.DeletedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		Reference:        m.Reference,
		UserID:           m.UserID,
		BankAccountID:    m.BankAccountID,
		PaymentMethodID:  m.PaymentMethodID,
		Type:             domain.TransactionType(m.Type),
		Amount:           m.Amount,
		CurrencyCode:     m.CurrencyCode,
		Status:           domain.TransactionStatus(m.Status),
		Gateway:          domain.GatewayName(m.Gateway),
		GatewayReference: m.GatewayReference,
		StartBalance:     m.StartBalance,
		EndBalance:       m.EndBalance,
		Description:      m.Description,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		DeletedAt:        m.DeletedAt,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
