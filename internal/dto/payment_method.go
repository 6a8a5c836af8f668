package dto

import (
	"encoding/json"

	"github.com/vicdotun/payvault/internal/core/domain"
)

// CreatePaymentMethodRequest registers a gateway capability for the calling
// user. Type is immutable after creation.
type CreatePaymentMethodRequest struct {
	Type    string          `json:"type" binding:"required,oneof=PAYSTACK STRIPE PAYPAL"`
	Details json.RawMessage `json:"details,omitempty"`
}

// PaymentMethodResponse is the read shape for a payment method. Details stay
// opaque and are echoed back verbatim.
type PaymentMethodResponse struct {
	PaymentMethodID string          `json:"paymentMethodID"`
	Type            string          `json:"type"`
	Details         json.RawMessage `json:"details,omitempty"`
	IsActive        bool            `json:"isActive"`
}

// ToPaymentMethodResponse converts a domain.PaymentMethod to its response DTO.
func ToPaymentMethodResponse(pm *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		PaymentMethodID: pm.PaymentMethodID,
		Type:            string(pm.Type),
		Details:         json.RawMessage(pm.Details),
		IsActive:        pm.IsActive,
	}
}

// ToPaymentMethodResponses converts a slice of domain.PaymentMethod.
func ToPaymentMethodResponses(pms []domain.PaymentMethod) []PaymentMethodResponse {
	responses := make([]PaymentMethodResponse, len(pms))
	for i := range pms {
		responses[i] = ToPaymentMethodResponse(&pms[i])
	}
	return responses
}
