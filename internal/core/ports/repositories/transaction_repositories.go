package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vicdotun/payvault/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its primary identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByReference retrieves a transaction by its external-facing reference.
	FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error)

	// ReferenceExists reports whether any transaction row carries the given
	// reference. Soft-deleted rows count: a reference is never reused.
	ReferenceExists(ctx context.Context, reference string) (bool, error)

	// ListTransactionsByUser retrieves a paginated list of a user's transactions
	// using token-based pagination. Returns the transactions, a token for the
	// next page, and an error.
	ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data. These are
// the atomic primitives the orchestrator composes; the locking discipline
// lives behind them, never in service code.
type TransactionWriter interface {
	// CreateTransaction persists a new transaction row. The first durable
	// status is PENDING.
	CreateTransaction(ctx context.Context, txn domain.Transaction) error

	// MarkTransactionFailed flips a PENDING transaction to FAILED via a
	// compare-and-swap on status. Returns apperrors.ErrConflict when the row
	// already reached a terminal state.
	MarkTransactionFailed(ctx context.Context, transactionID string, updatedBy string, now time.Time) error

	// SettleTransaction completes a PENDING transaction and applies its
	// balance mutation in one database transaction: it locks the transaction
	// row, re-checks the status is still PENDING, locks the target account
	// row(s), records start/end balance snapshots, applies the amount
	// (credit for deposits, debit for withdrawals, rejecting a negative
	// result), and flips the status to COMPLETED. Returns the settled
	// transaction and the user's new wallet balance.
	// Returns apperrors.ErrConflict if the status check fails (the
	// at-most-once guard against concurrent settlement attempts).
	SettleTransaction(ctx context.Context, transactionID string, gatewayReference string, updatedBy string, now time.Time) (*domain.Transaction, decimal.Decimal, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
