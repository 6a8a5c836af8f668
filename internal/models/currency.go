package models

// Currency represents a row in the currencies table.
type Currency struct {
	CurrencyCode string `db:"currency_code"`
	Name         string `db:"name"`
	Symbol       string `db:"symbol"`
	AuditFields
}
