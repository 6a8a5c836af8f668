package repositories

import (
	"context"

	"github.com/vicdotun/payvault/internal/core/domain"
)

// BankReader defines read operations for bank reference data.
type BankReader interface {
	FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error)
	ListBanks(ctx context.Context, limit int, offset int) ([]domain.Bank, error)
}

// BankWriter defines write operations for bank reference data.
type BankWriter interface {
	SaveBank(ctx context.Context, bank domain.Bank) error
	UpdateBank(ctx context.Context, bank domain.Bank) error
	DeleteBank(ctx context.Context, bankID string) error
}

// BankRepositoryFacade combines all bank repository interfaces.
type BankRepositoryFacade interface {
	BankReader
	BankWriter
}
