package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a row in the users table.
type User struct {
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	Email        string          `db:"email"`
	PasswordHash string          `db:"password_hash"`
	Balance      decimal.Decimal `db:"balance"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
