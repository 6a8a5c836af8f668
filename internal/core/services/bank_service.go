package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vicdotun/payvault/internal/core/domain"
	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	portssvc "github.com/vicdotun/payvault/internal/core/ports/services"
	"github.com/vicdotun/payvault/internal/dto"
	"github.com/vicdotun/payvault/internal/middleware"
)

type bankService struct {
	bankRepo portsrepo.BankRepositoryFacade
}

// NewBankService creates a new bank reference data service.
func NewBankService(bankRepo portsrepo.BankRepositoryFacade) portssvc.BankSvcFacade {
	return &bankService{bankRepo: bankRepo}
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

func (s *bankService) CreateBank(ctx context.Context, req dto.CreateBankRequest, creatorUserID string) (*domain.Bank, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	bank := domain.Bank{
		BankID:  uuid.NewString(),
		Name:    req.Name,
		Code:    req.Code,
		Country: req.Country,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bankRepo.SaveBank(ctx, bank); err != nil {
		logger.Error("Failed to save bank", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Bank created", slog.String("bank_id", bank.BankID), slog.String("code", bank.Code))
	return &bank, nil
}

func (s *bankService) GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	return s.bankRepo.FindBankByID(ctx, bankID)
}

func (s *bankService) ListBanks(ctx context.Context, limit int, offset int) ([]domain.Bank, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.bankRepo.ListBanks(ctx, limit, offset)
}

func (s *bankService) UpdateBank(ctx context.Context, bankID string, req dto.UpdateBankRequest, userID string) (*domain.Bank, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		bank.Name = *req.Name
	}
	if req.Country != nil {
		bank.Country = *req.Country
	}
	bank.LastUpdatedAt = time.Now()
	bank.LastUpdatedBy = userID

	if err := s.bankRepo.UpdateBank(ctx, *bank); err != nil {
		logger.Error("Failed to update bank", slog.String("bank_id", bankID), slog.String("error", err.Error()))
		return nil, err
	}
	return bank, nil
}

func (s *bankService) DeleteBank(ctx context.Context, bankID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.bankRepo.DeleteBank(ctx, bankID); err != nil {
		logger.Error("Failed to delete bank", slog.String("bank_id", bankID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Bank deleted", slog.String("bank_id", bankID))
	return nil
}
