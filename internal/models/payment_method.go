package models

import "time"

// PaymentMethod represents a row in the payment_methods table.
// Details is stored as jsonb and treated as an opaque blob.
type PaymentMethod struct {
	PaymentMethodID string `db:"payment_method_id"`
	UserID          string `db:"user_id"`
	Type            string `db:"type"`
	Details         []byte `db:"details"`
	IsActive        bool   `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
