package repositories

import (
	"context"
	"time"

	"github.com/vicdotun/payvault/internal/core/domain"
)

// BankAccountReader defines read operations for bank account data.
type BankAccountReader interface {
	// FindBankAccountByID retrieves a bank account, excluding soft-deleted rows.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccountsByUser retrieves a user's bank accounts, excluding soft-deleted rows.
	ListBankAccountsByUser(ctx context.Context, userID string) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data. Balance
// is absent on purpose: it moves only through transaction settlement.
type BankAccountWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error
	MarkBankAccountDeleted(ctx context.Context, bankAccountID string, deletedBy string, now time.Time) error
}

// BankAccountRepositoryFacade combines all bank account repository interfaces.
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
