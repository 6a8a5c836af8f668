package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vicdotun/payvault/internal/apperrors"
	"github.com/vicdotun/payvault/internal/core/domain"
	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	"github.com/vicdotun/payvault/internal/models"
	"github.com/vicdotun/payvault/internal/utils/mapping"
)

type PgxPaymentMethodRepository struct {
	BaseRepository
}

// newPgxPaymentMethodRepository creates a new repository for payment method data.
func newPgxPaymentMethodRepository(pool *pgxpool.Pool) portsrepo.PaymentMethodRepositoryFacade {
	return &PgxPaymentMethodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentMethodRepositoryFacade = (*PgxPaymentMethodRepository)(nil)

const paymentMethodColumns = `
	payment_method_id, user_id, type, details, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanPaymentMethod(row rowScanner) (*models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(
		&m.PaymentMethodID,
		&m.UserID,
		&m.Type,
		&m.Details,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePaymentMethod inserts a new payment method row.
func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(pm)

	query := `
		INSERT INTO payment_methods (payment_method_id, user_id, type, details, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentMethodID,
		m.UserID,
		m.Type,
		m.Details,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("%w: payment method already exists", apperrors.ErrDuplicate)
			case "23503":
				return fmt.Errorf("%w: referenced user does not exist", apperrors.ErrValidation)
			}
		}
		return fmt.Errorf("failed to save payment method %s: %w", m.PaymentMethodID, err)
	}
	return nil
}

// FindPaymentMethodByID retrieves a payment method, excluding soft-deleted rows.
func (r *PgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	query := `SELECT` + paymentMethodColumns + `
		FROM payment_methods
		WHERE payment_method_id = $1 AND deleted_at IS NULL;`

	m, err := scanPaymentMethod(r.Pool.QueryRow(ctx, query, paymentMethodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment method %s not found", paymentMethodID))
		}
		return nil, fmt.Errorf("failed to find payment method %s: %w", paymentMethodID, err)
	}
	d := mapping.ToDomainPaymentMethod(*m)
	return &d, nil
}

// ListPaymentMethodsByUser retrieves a user's payment methods, excluding
// soft-deleted rows.
func (r *PgxPaymentMethodRepository) ListPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	query := `SELECT` + paymentMethodColumns + `
		FROM payment_methods
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods for user %s: %w", userID, err)
	}
	defer rows.Close()

	var modelMethods []models.PaymentMethod
	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method row: %w", err)
		}
		modelMethods = append(modelMethods, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment method rows: %w", err)
	}

	return mapping.ToDomainPaymentMethodSlice(modelMethods), nil
}

// DeactivatePaymentMethod flips is_active off without deleting the row.
func (r *PgxPaymentMethodRepository) DeactivatePaymentMethod(ctx context.Context, paymentMethodID string, userID string, now time.Time) error {
	query := `
		UPDATE payment_methods
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE payment_method_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, now, userID, paymentMethodID)
	if err != nil {
		return fmt.Errorf("failed to deactivate payment method %s: %w", paymentMethodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("payment method %s not found", paymentMethodID))
	}
	return nil
}

// MarkPaymentMethodDeleted soft-deletes the payment method row.
func (r *PgxPaymentMethodRepository) MarkPaymentMethodDeleted(ctx context.Context, paymentMethodID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE payment_methods
		SET deleted_at = $1, is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE payment_method_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, now, deletedBy, paymentMethodID)
	if err != nil {
		return fmt.Errorf("failed to delete payment method %s: %w", paymentMethodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("payment method %s not found", paymentMethodID))
	}
	return nil
}
