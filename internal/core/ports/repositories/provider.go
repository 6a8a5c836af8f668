package repositories

// RepositoryProvider bundles every repository facade for injection into the
// service layer.
type RepositoryProvider struct {
	TransactionRepo   TransactionRepositoryFacade
	UserRepo          UserRepositoryFacade
	PaymentMethodRepo PaymentMethodRepositoryFacade
	BankRepo          BankRepositoryFacade
	BankAccountRepo   BankAccountRepositoryFacade
	CurrencyRepo      CurrencyRepositoryFacade
}
