package services

import (
	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/core/ports/gateways"
	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	portssvc "github.com/vicdotun/payvault/internal/core/ports/services"
	"github.com/vicdotun/payvault/pkg/config"
)

// NewServiceContainer creates a service container with fully wired dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gatewayAdapters map[domain.GatewayName]gateways.PaymentGateway) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Bank = NewBankService(repos.BankRepo)
	container.BankAccount = NewBankAccountService(repos.BankAccountRepo, repos.BankRepo, repos.CurrencyRepo)
	container.PaymentMethod = NewPaymentMethodService(repos.PaymentMethodRepo)

	refGen := NewReferenceGenerator(cfg.ReferencePrefix, repos.TransactionRepo)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.UserRepo,
		repos.PaymentMethodRepo,
		repos.BankAccountRepo,
		repos.CurrencyRepo,
		gatewayAdapters,
		refGen,
		cfg.DefaultCurrency,
		cfg.CallbackBaseURL,
	)

	return container
}
