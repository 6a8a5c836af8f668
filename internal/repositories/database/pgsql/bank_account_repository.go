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

type PgxBankAccountRepository struct {
	BaseRepository
}

// newPgxBankAccountRepository creates a new repository for bank account data.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

const bankAccountColumns = `
	bank_account_id, user_id, bank_id, account_number, account_name, currency_code, balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanBankAccount(row rowScanner) (*models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.UserID,
		&m.BankID,
		&m.AccountNumber,
		&m.AccountName,
		&m.CurrencyCode,
		&m.Balance,
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

// SaveBankAccount inserts a new bank account row.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)

	query := `
		INSERT INTO bank_accounts (bank_account_id, user_id, bank_id, account_number, account_name, currency_code, balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankAccountID,
		m.UserID,
		m.BankID,
		m.AccountNumber,
		m.AccountName,
		m.CurrencyCode,
		m.Balance,
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
				return fmt.Errorf("%w: bank account %s at this bank already exists", apperrors.ErrDuplicate, m.AccountNumber)
			case "23503":
				return fmt.Errorf("%w: referenced bank or user does not exist", apperrors.ErrValidation)
			}
		}
		return fmt.Errorf("failed to save bank account %s: %w", m.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account, excluding soft-deleted rows.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT` + bankAccountColumns + `
		FROM bank_accounts
		WHERE bank_account_id = $1 AND deleted_at IS NULL;`

	m, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("bank account %s not found", bankAccountID))
		}
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	d := mapping.ToDomainBankAccount(*m)
	return &d, nil
}

// ListBankAccountsByUser retrieves a user's bank accounts, excluding
// soft-deleted rows.
func (r *PgxBankAccountRepository) ListBankAccountsByUser(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	query := `SELECT` + bankAccountColumns + `
		FROM bank_accounts
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	var modelAccounts []models.BankAccount
	for rows.Next() {
		m, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		modelAccounts = append(modelAccounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}

	return mapping.ToDomainBankAccountSlice(modelAccounts), nil
}

// UpdateBankAccount writes mutable bank account fields. Balance is excluded;
// it moves only through transaction settlement.
func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)

	query := `
		UPDATE bank_accounts
		SET account_name = $1, is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE bank_account_id = $5 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, m.AccountName, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.BankAccountID)
	if err != nil {
		return fmt.Errorf("failed to update bank account %s: %w", m.BankAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bank account %s not found", m.BankAccountID))
	}
	return nil
}

// MarkBankAccountDeleted soft-deletes the bank account row. Transactions
// referencing it are untouched.
func (r *PgxBankAccountRepository) MarkBankAccountDeleted(ctx context.Context, bankAccountID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE bank_accounts
		SET deleted_at = $1, is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE bank_account_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, now, deletedBy, bankAccountID)
	if err != nil {
		return fmt.Errorf("failed to delete bank account %s: %w", bankAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bank account %s not found", bankAccountID))
	}
	return nil
}
