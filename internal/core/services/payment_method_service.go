package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vicdotun/payvault/internal/apperrors"
	"github.com/vicdotun/payvault/internal/core/domain"
	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	portssvc "github.com/vicdotun/payvault/internal/core/ports/services"
	"github.com/vicdotun/payvault/internal/dto"
	"github.com/vicdotun/payvault/internal/middleware"
)

type paymentMethodService struct {
	pmRepo portsrepo.PaymentMethodRepositoryFacade
}

// NewPaymentMethodService creates a new payment method service.
func NewPaymentMethodService(pmRepo portsrepo.PaymentMethodRepositoryFacade) portssvc.PaymentMethodSvcFacade {
	return &paymentMethodService{pmRepo: pmRepo}
}

var _ portssvc.PaymentMethodSvcFacade = (*paymentMethodService)(nil)

// CreatePaymentMethod registers a gateway capability for the calling user.
// The method is active on creation; its type never changes afterwards.
func (s *paymentMethodService) CreatePaymentMethod(ctx context.Context, userID string, req dto.CreatePaymentMethodRequest) (*domain.PaymentMethod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	pm := domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		UserID:          userID,
		Type:            domain.GatewayName(req.Type),
		Details:         []byte(req.Details),
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.pmRepo.SavePaymentMethod(ctx, pm); err != nil {
		logger.Error("Failed to save payment method", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment method created", slog.String("payment_method_id", pm.PaymentMethodID), slog.String("type", string(pm.Type)))
	return &pm, nil
}

func (s *paymentMethodService) ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	return s.pmRepo.ListPaymentMethodsByUser(ctx, userID)
}

// DeletePaymentMethod soft-deletes a payment method owned by userID.
func (s *paymentMethodService) DeletePaymentMethod(ctx context.Context, userID string, paymentMethodID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	pm, err := s.pmRepo.FindPaymentMethodByID(ctx, paymentMethodID)
	if err != nil {
		return err
	}
	if pm.UserID != userID {
		return apperrors.NewNotFoundError(fmt.Sprintf("payment method %s not found", paymentMethodID))
	}

	if err := s.pmRepo.MarkPaymentMethodDeleted(ctx, paymentMethodID, userID, time.Now()); err != nil {
		logger.Error("Failed to delete payment method", slog.String("payment_method_id", paymentMethodID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Payment method deleted", slog.String("payment_method_id", paymentMethodID))
	return nil
}
