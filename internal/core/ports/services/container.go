package services

// ServiceContainer bundles every service facade for injection into the HTTP
// layer.
type ServiceContainer struct {
	Transaction   TransactionSvcFacade
	User          UserSvcFacade
	Token         TokenSvcFacade
	PaymentMethod PaymentMethodSvcFacade
	Bank          BankSvcFacade
	BankAccount   BankAccountSvcFacade
	Currency      CurrencySvcFacade
}
