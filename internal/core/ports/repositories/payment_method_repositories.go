package repositories

import (
	"context"
	"time"

	"github.com/vicdotun/payvault/internal/core/domain"
)

// PaymentMethodReader defines read operations for payment method data.
type PaymentMethodReader interface {
	// FindPaymentMethodByID retrieves a payment method, excluding soft-deleted rows.
	FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)

	// ListPaymentMethodsByUser retrieves a user's payment methods, excluding soft-deleted rows.
	ListPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error)
}

// PaymentMethodWriter defines write operations for payment method data.
// Type is immutable after creation, so there is no update of it here.
type PaymentMethodWriter interface {
	SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error
	DeactivatePaymentMethod(ctx context.Context, paymentMethodID string, userID string, now time.Time) error
	MarkPaymentMethodDeleted(ctx context.Context, paymentMethodID string, deletedBy string, now time.Time) error
}

// PaymentMethodRepositoryFacade combines all payment method repository interfaces.
type PaymentMethodRepositoryFacade interface {
	PaymentMethodReader
	PaymentMethodWriter
}
