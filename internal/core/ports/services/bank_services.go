package services

import (
	"context"

	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/dto"
)

// BankSvcFacade exposes bank reference data operations.
type BankSvcFacade interface {
	CreateBank(ctx context.Context, req dto.CreateBankRequest, creatorUserID string) (*domain.Bank, error)
	GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error)
	ListBanks(ctx context.Context, limit int, offset int) ([]domain.Bank, error)
	UpdateBank(ctx context.Context, bankID string, req dto.UpdateBankRequest, userID string) (*domain.Bank, error)
	DeleteBank(ctx context.Context, bankID string) error
}

// BankAccountSvcFacade exposes user bank account operations.
type BankAccountSvcFacade interface {
	CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error)
	GetBankAccountByID(ctx context.Context, userID string, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error)
	UpdateBankAccount(ctx context.Context, userID string, bankAccountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error)
	DeleteBankAccount(ctx context.Context, userID string, bankAccountID string) error
}
