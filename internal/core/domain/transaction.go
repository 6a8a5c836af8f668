package domain

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

// TransactionStatus is the state-machine state of a transaction.
// INITIATED is transient and never persisted; the first durable state is
// PENDING (or FAILED when the gateway rejects synchronously).
// COMPLETED and FAILED are terminal.
type TransactionStatus string

const (
	Initiated TransactionStatus = "INITIATED"
	Pending   TransactionStatus = "PENDING"
	Completed TransactionStatus = "COMPLETED"
	Failed    TransactionStatus = "FAILED"
)

// GatewayName identifies the external payment provider a transaction rides on.
type GatewayName string

const (
	GatewayPaystack GatewayName = "PAYSTACK"
	GatewayStripe   GatewayName = "STRIPE"
	GatewayPayPal   GatewayName = "PAYPAL"
)

// Transaction is the central record of a money movement. Its reference is
// assigned before any gateway call and is immutable and globally unique,
// soft-deleted rows included.
type Transaction struct {
	TransactionID    string            `json:"transactionID"`
	Reference        string            `json:"reference"`
	UserID           string            `json:"userID"`
	BankAccountID    *string           `json:"bankAccountID,omitempty"`
	PaymentMethodID  *string           `json:"paymentMethodID,omitempty"`
	Type             TransactionType   `json:"type"`
	Amount           decimal.Decimal   `json:"amount"` // Positive, 2dp
	CurrencyCode     string            `json:"currencyCode"`
	Status           TransactionStatus `json:"status"`
	Gateway          GatewayName       `json:"gateway"`
	GatewayReference string            `json:"gatewayReference,omitempty"` // Provider-side id (PaymentIntent, transfer code, order id)
	StartBalance     *decimal.Decimal  `json:"startBalance,omitempty"`     // Snapshot before settlement
	EndBalance       *decimal.Decimal  `json:"endBalance,omitempty"`       // Snapshot after settlement
	Description      string            `json:"description"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsTerminal reports whether the status admits no further transitions.
func (s TransactionStatus) IsTerminal() bool {
	return s == Completed || s == Failed
}
