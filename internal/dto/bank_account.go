package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vicdotun/payvault/internal/core/domain"
)

// CreateBankAccountRequest links a bank account to the calling user.
type CreateBankAccountRequest struct {
	BankID        string `json:"bankID" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	AccountName   string `json:"accountName" binding:"required"`
	CurrencyCode  string `json:"currencyCode" binding:"required"`
}

// UpdateBankAccountRequest updates mutable bank account fields.
type UpdateBankAccountRequest struct {
	AccountName *string `json:"accountName,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// BankAccountResponse is the read shape for a bank account.
type BankAccountResponse struct {
	BankAccountID string          `json:"bankAccountID"`
	BankID        string          `json:"bankID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
}

// ToBankAccountResponse converts a domain.BankAccount to its response DTO.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: a.BankAccountID,
		BankID:        a.BankID,
		AccountNumber: a.AccountNumber,
		AccountName:   a.AccountName,
		CurrencyCode:  a.CurrencyCode,
		Balance:       a.Balance,
		IsActive:      a.IsActive,
	}
}

// ToBankAccountResponses converts a slice of domain.BankAccount.
func ToBankAccountResponses(accounts []domain.BankAccount) []BankAccountResponse {
	responses := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToBankAccountResponse(&accounts[i])
	}
	return responses
}
