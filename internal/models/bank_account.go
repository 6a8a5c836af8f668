package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount represents a row in the bank_accounts table.
type BankAccount struct {
	BankAccountID string          `db:"bank_account_id"`
	UserID        string          `db:"user_id"`
	BankID        string          `db:"bank_id"`
	AccountNumber string          `db:"account_number"`
	AccountName   string          `db:"account_name"`
	CurrencyCode  string          `db:"currency_code"`
	Balance       decimal.Decimal `db:"balance"`
	IsActive      bool            `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
