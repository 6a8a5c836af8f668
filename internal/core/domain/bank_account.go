package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is a user-owned account at an external bank. Its balance is a
// sub-balance of the user's wallet and is mutated only under settlement.
type BankAccount struct {
	BankAccountID string          `json:"bankAccountID"`
	UserID        string          `json:"userID"`
	BankID        string          `json:"bankID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
