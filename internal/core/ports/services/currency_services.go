package services

import (
	"context"

	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/dto"
)

// CurrencySvcFacade exposes currency reference data operations.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
