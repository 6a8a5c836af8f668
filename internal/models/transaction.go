package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of money movement.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
)

// TransactionStatus is the persisted state of a transaction row.
type TransactionStatus string

const (
	Pending   TransactionStatus = "PENDING"
	Completed TransactionStatus = "COMPLETED"
	Failed    TransactionStatus = "FAILED"
)

// Transaction is the row shape for the transactions table.
// start_balance/end_balance are nullable; they are written once, at settlement.
type Transaction struct {
	TransactionID    string            `db:"transaction_id"`
	Reference        string            `db:"reference"`
	UserID           string            `db:"user_id"`
	BankAccountID    *string           `db:"bank_account_id"`
	PaymentMethodID  *string           `db:"payment_method_id"`
	Type             TransactionType   `db:"type"`
	Amount           decimal.Decimal   `db:"amount"`
	CurrencyCode     string            `db:"currency_code"`
	Status           TransactionStatus `db:"status"`
	Gateway          string            `db:"gateway"`
	GatewayReference string            `db:"gateway_reference"`
	StartBalance     *decimal.Decimal  `db:"start_balance"`
	EndBalance       *decimal.Decimal  `db:"end_balance"`
	Description      string            `db:"description"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
