package domain

import "time"

// PaymentMethod is a capability record gating which gateway a transaction may
// use. Type is immutable after creation; IsActive gates eligibility.
type PaymentMethod struct {
	PaymentMethodID string      `json:"paymentMethodID"`
	UserID          string      `json:"userID"`
	Type            GatewayName `json:"type"`
	Details         []byte      `json:"details"` // Opaque provider-specific JSON blob
	IsActive        bool        `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
