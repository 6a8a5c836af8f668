package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vicdotun/payvault/internal/apperrors"
	"github.com/vicdotun/payvault/internal/core/domain"
	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	portssvc "github.com/vicdotun/payvault/internal/core/ports/services"
	"github.com/vicdotun/payvault/internal/dto"
	"github.com/vicdotun/payvault/internal/middleware"
)

type bankAccountService struct {
	accountRepo  portsrepo.BankAccountRepositoryFacade
	bankRepo     portsrepo.BankReader
	currencyRepo portsrepo.CurrencyReader
}

// NewBankAccountService creates a new bank account service.
func NewBankAccountService(accountRepo portsrepo.BankAccountRepositoryFacade, bankRepo portsrepo.BankReader, currencyRepo portsrepo.CurrencyReader) portssvc.BankAccountSvcFacade {
	return &bankAccountService{
		accountRepo:  accountRepo,
		bankRepo:     bankRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

// CreateBankAccount links a bank account to the calling user. The referenced
// bank and currency must exist; the account starts active with a zero balance.
func (s *bankAccountService) CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.bankRepo.FindBankByID(ctx, req.BankID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: bank %s not found", apperrors.ErrValidation, req.BankID)
		}
		return nil, err
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, err
	}

	now := time.Now()
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		UserID:        userID,
		BankID:        req.BankID,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		CurrencyCode:  req.CurrencyCode,
		Balance:       decimal.Zero,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveBankAccount(ctx, account); err != nil {
		logger.Error("Failed to save bank account", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

// findOwned loads an account and enforces ownership, reading ownership
// failures as not-found.
func (s *bankAccountService) findOwned(ctx context.Context, userID, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("bank account %s not found", bankAccountID))
	}
	return account, nil
}

func (s *bankAccountService) GetBankAccountByID(ctx context.Context, userID string, bankAccountID string) (*domain.BankAccount, error) {
	return s.findOwned(ctx, userID, bankAccountID)
}

func (s *bankAccountService) ListBankAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	return s.accountRepo.ListBankAccountsByUser(ctx, userID)
}

func (s *bankAccountService) UpdateBankAccount(ctx context.Context, userID string, bankAccountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.findOwned(ctx, userID, bankAccountID)
	if err != nil {
		return nil, err
	}

	if req.AccountName != nil {
		account.AccountName = *req.AccountName
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateBankAccount(ctx, *account); err != nil {
		logger.Error("Failed to update bank account", slog.String("bank_account_id", bankAccountID), slog.String("error", err.Error()))
		return nil, err
	}
	return account, nil
}

// DeleteBankAccount soft-deletes the account. Transactions referencing it
// keep their bank_account_id; history is never rewritten.
func (s *bankAccountService) DeleteBankAccount(ctx context.Context, userID string, bankAccountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwned(ctx, userID, bankAccountID); err != nil {
		return err
	}

	if err := s.accountRepo.MarkBankAccountDeleted(ctx, bankAccountID, userID, time.Now()); err != nil {
		logger.Error("Failed to delete bank account", slog.String("bank_account_id", bankAccountID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Bank account deleted", slog.String("bank_account_id", bankAccountID))
	return nil
}
