package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vicdotun/payvault/internal/apperrors"
	"github.com/vicdotun/payvault/internal/core/domain"
	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	"github.com/vicdotun/payvault/internal/models"
	"github.com/vicdotun/payvault/internal/utils/mapping"
	"github.com/vicdotun/payvault/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, reference, user_id, bank_account_id, payment_method_id,
	type, amount, currency_code, status, gateway, gateway_reference,
	start_balance, end_balance, description,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Reference,
		&m.UserID,
		&m.BankAccountID,
		&m.PaymentMethodID,
		&m.Type,
		&m.Amount,
		&m.CurrencyCode,
		&m.Status,
		&m.Gateway,
		&m.GatewayReference,
		&m.StartBalance,
		&m.EndBalance,
		&m.Description,
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

// CreateTransaction inserts a new transaction row.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (
			transaction_id, reference, user_id, bank_account_id, payment_method_id,
			type, amount, currency_code, status, gateway, gateway_reference,
			start_balance, end_balance, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.Reference,
		m.UserID,
		m.BankAccountID,
		m.PaymentMethodID,
		m.Type,
		m.Amount,
		m.CurrencyCode,
		m.Status,
		m.Gateway,
		m.GatewayReference,
		m.StartBalance,
		m.EndBalance,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction reference %s already exists", apperrors.ErrDuplicate, m.Reference)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its primary identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND deleted_at IS NULL;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(*m)
	return &d, nil
}

// FindTransactionByReference retrieves a transaction by its external reference.
func (r *PgxTransactionRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `SELECT` + transactionColumns + `
		FROM transactions
		WHERE reference = $1 AND deleted_at IS NULL;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction with reference %s not found", reference))
		}
		return nil, fmt.Errorf("failed to find transaction by reference %s: %w", reference, err)
	}
	d := mapping.ToDomainTransaction(*m)
	return &d, nil
}

// ReferenceExists reports whether any row, soft-deleted included, carries the
// reference.
func (r *PgxTransactionRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transactions WHERE reference = $1)`, reference).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check reference %s: %w", reference, err)
	}
	return exists, nil
}

// ListTransactionsByUser retrieves a user's transactions newest first using
// (created_at, transaction_id) keyset pagination.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `SELECT` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND deleted_at IS NULL`
	args := []any{userID}

	if nextToken != nil && *nextToken != "" {
		createdAt, transactionID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, createdAt, transactionID)
	}

	// One extra row tells us whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var modelTxns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var token *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		token = &t
	}

	return mapping.ToDomainTransactionSlice(modelTxns), token, nil
}

// MarkTransactionFailed flips a PENDING transaction to FAILED via a
// compare-and-swap on status.
func (r *PgxTransactionRepository) MarkTransactionFailed(ctx context.Context, transactionID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE transactions
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $4 AND status = $5 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, models.Failed, now, updatedBy, transactionID, models.Pending)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s failed: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a lost status race.
		if _, err := r.FindTransactionByID(ctx, transactionID); err != nil {
			return err
		}
		return fmt.Errorf("%w: transaction %s is not pending", apperrors.ErrConflict, transactionID)
	}
	return nil
}

// SettleTransaction completes a PENDING transaction and applies its balance
// mutation in one database transaction. The status re-check under the row
// lock is the at-most-once settlement guard.
func (r *PgxTransactionRepository) SettleTransaction(ctx context.Context, transactionID string, gatewayReference string, updatedBy string, now time.Time) (*domain.Transaction, decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	// 1. Lock the transaction row and re-check the status.
	lockQuery := `SELECT` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND deleted_at IS NULL
		FOR UPDATE;`

	m, err := scanTransaction(tx.QueryRow(ctx, lockQuery, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decimal.Zero, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, decimal.Zero, fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}
	if m.Status != models.Pending {
		return nil, decimal.Zero, fmt.Errorf("%w: transaction %s already %s", apperrors.ErrConflict, transactionID, m.Status)
	}

	// 2. Lock the wallet row and snapshot the balance.
	var walletBalance decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE user_id = $1 AND deleted_at IS NULL FOR UPDATE`, m.UserID).Scan(&walletBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decimal.Zero, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", m.UserID))
		}
		return nil, decimal.Zero, fmt.Errorf("failed to lock user %s: %w", m.UserID, err)
	}

	// 3. Compute the new wallet balance.
	var newBalance decimal.Decimal
	switch m.Type {
	case models.Deposit:
		newBalance = walletBalance.Add(m.Amount)
	case models.Withdrawal:
		newBalance = walletBalance.Sub(m.Amount)
		if newBalance.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: balance %s is insufficient for withdrawal of %s", apperrors.ErrValidation, walletBalance, m.Amount)
		}
	default:
		return nil, decimal.Zero, fmt.Errorf("unknown transaction type %s on transaction %s", m.Type, transactionID)
	}

	_, err = tx.Exec(ctx, `UPDATE users SET balance = $1, last_updated_at = $2, last_updated_by = $3 WHERE user_id = $4`,
		newBalance, now, updatedBy, m.UserID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to update balance for user %s: %w", m.UserID, err)
	}

	// 4. Mirror the mutation onto the attached bank account, if any.
	if m.BankAccountID != nil {
		var accountBalance decimal.Decimal
		err = tx.QueryRow(ctx, `SELECT balance FROM bank_accounts WHERE bank_account_id = $1 AND deleted_at IS NULL FOR UPDATE`, *m.BankAccountID).Scan(&accountBalance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, decimal.Zero, apperrors.NewNotFoundError(fmt.Sprintf("bank account %s not found", *m.BankAccountID))
			}
			return nil, decimal.Zero, fmt.Errorf("failed to lock bank account %s: %w", *m.BankAccountID, err)
		}

		var newAccountBalance decimal.Decimal
		if m.Type == models.Deposit {
			newAccountBalance = accountBalance.Add(m.Amount)
		} else {
			newAccountBalance = accountBalance.Sub(m.Amount)
			if newAccountBalance.IsNegative() {
				return nil, decimal.Zero, fmt.Errorf("%w: bank account balance %s is insufficient for withdrawal of %s", apperrors.ErrValidation, accountBalance, m.Amount)
			}
		}

		_, err = tx.Exec(ctx, `UPDATE bank_accounts SET balance = $1, last_updated_at = $2, last_updated_by = $3 WHERE bank_account_id = $4`,
			newAccountBalance, now, updatedBy, *m.BankAccountID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("failed to update balance for bank account %s: %w", *m.BankAccountID, err)
		}
	}

	// 5. Flip the status with the snapshots. The status predicate repeats the
	// re-check so a programming error above cannot settle a terminal row.
	if gatewayReference == "" {
		gatewayReference = m.GatewayReference
	}
	tag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET status = $1, gateway_reference = $2, start_balance = $3, end_balance = $4, last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $7 AND status = $8;`,
		models.Completed, gatewayReference, walletBalance, newBalance, now, updatedBy, transactionID, models.Pending)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to complete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: transaction %s is not pending", apperrors.ErrConflict, transactionID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, decimal.Zero, err
	}

	m.Status = models.Completed
	m.GatewayReference = gatewayReference
	m.StartBalance = &walletBalance
	m.EndBalance = &newBalance
	m.LastUpdatedAt = now
	m.LastUpdatedBy = updatedBy

	d := mapping.ToDomainTransaction(*m)
	return &d, newBalance, nil
}
