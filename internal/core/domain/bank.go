package domain

// Bank is reference data describing a settlement institution.
type Bank struct {
	BankID  string `json:"bankID"`
	Name    string `json:"name"`
	Code    string `json:"code"` // Clearing/settlement code, unique
	Country string `json:"country"`
	AuditFields
}
