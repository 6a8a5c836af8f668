package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account holder. Balance is the wallet balance mutated
// only by the transaction settlement path, never written directly by handlers.
type User struct {
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
