package services

import (
	"context"

	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/dto"
)

// PaymentMethodSvcFacade exposes payment method lifecycle operations.
type PaymentMethodSvcFacade interface {
	CreatePaymentMethod(ctx context.Context, userID string, req dto.CreatePaymentMethodRequest) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, userID string, paymentMethodID string) error
}
