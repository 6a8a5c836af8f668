package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vicdotun/payvault/internal/apperrors"
	"github.com/vicdotun/payvault/internal/core/domain"
	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	"github.com/vicdotun/payvault/internal/models"
	"github.com/vicdotun/payvault/internal/utils/mapping"
)

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank reference data.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

const bankColumns = `
	bank_id, name, code, country,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBank(row rowScanner) (*models.Bank, error) {
	var m models.Bank
	err := row.Scan(
		&m.BankID,
		&m.Name,
		&m.Code,
		&m.Country,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveBank inserts a new bank row.
func (r *PgxBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	m := mapping.ToModelBank(bank)

	query := `
		INSERT INTO banks (bank_id, name, code, country, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankID,
		m.Name,
		m.Code,
		m.Country,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: bank with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save bank %s: %w", m.BankID, err)
	}
	return nil
}

// FindBankByID retrieves a bank by its ID.
func (r *PgxBankRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	query := `SELECT` + bankColumns + `
		FROM banks
		WHERE bank_id = $1;`

	m, err := scanBank(r.Pool.QueryRow(ctx, query, bankID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("bank %s not found", bankID))
		}
		return nil, fmt.Errorf("failed to find bank %s: %w", bankID, err)
	}
	d := mapping.ToDomainBank(*m)
	return &d, nil
}

// ListBanks retrieves banks ordered by name.
func (r *PgxBankRepository) ListBanks(ctx context.Context, limit int, offset int) ([]domain.Bank, error) {
	query := `SELECT` + bankColumns + `
		FROM banks
		ORDER BY name ASC
		LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	defer rows.Close()

	var modelBanks []models.Bank
	for rows.Next() {
		m, err := scanBank(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank row: %w", err)
		}
		modelBanks = append(modelBanks, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank rows: %w", err)
	}

	return mapping.ToDomainBankSlice(modelBanks), nil
}

// UpdateBank writes mutable bank fields.
func (r *PgxBankRepository) UpdateBank(ctx context.Context, bank domain.Bank) error {
	m := mapping.ToModelBank(bank)

	query := `
		UPDATE banks
		SET name = $1, country = $2, last_updated_at = $3, last_updated_by = $4
		WHERE bank_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.Country, m.LastUpdatedAt, m.LastUpdatedBy, m.BankID)
	if err != nil {
		return fmt.Errorf("failed to update bank %s: %w", m.BankID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bank %s not found", m.BankID))
	}
	return nil
}

// DeleteBank removes a bank row. Bank accounts referencing it block the
// delete via the foreign key.
func (r *PgxBankRepository) DeleteBank(ctx context.Context, bankID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM banks WHERE bank_id = $1`, bankID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: bank %s is referenced by bank accounts", apperrors.ErrConflict, bankID)
		}
		return fmt.Errorf("failed to delete bank %s: %w", bankID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bank %s not found", bankID))
	}
	return nil
}
