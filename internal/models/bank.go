package models

// Bank represents a row in the banks table.
type Bank struct {
	BankID  string `db:"bank_id"`
	Name    string `db:"name"`
	Code    string `db:"code"`
	Country string `db:"country"`
	AuditFields
}
