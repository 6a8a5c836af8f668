package domain

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // ISO 4217, e.g. "NGN"
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	AuditFields
}
