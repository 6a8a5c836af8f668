package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
		PaymentMethodRepo: newPgxPaymentMethodRepository(dbPool),
		BankRepo:          newPgxBankRepository(dbPool),
		BankAccountRepo:   newPgxBankAccountRepository(dbPool),
		CurrencyRepo:      newPgxCurrencyRepository(dbPool),
	}
}
