package dto

import (
	"github.com/vicdotun/payvault/internal/core/domain"
)

// CreateBankRequest creates bank reference data.
type CreateBankRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// UpdateBankRequest updates mutable bank fields.
type UpdateBankRequest struct {
	Name    *string `json:"name,omitempty"`
	Country *string `json:"country,omitempty"`
}

// BankResponse is the read shape for a bank.
type BankResponse struct {
	BankID  string `json:"bankID"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Country string `json:"country"`
}

// ToBankResponse converts a domain.Bank to its response DTO.
func ToBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{
		BankID:  b.BankID,
		Name:    b.Name,
		Code:    b.Code,
		Country: b.Country,
	}
}

// ToBankResponses converts a slice of domain.Bank.
func ToBankResponses(banks []domain.Bank) []BankResponse {
	responses := make([]BankResponse, len(banks))
	for i := range banks {
		responses[i] = ToBankResponse(&banks[i])
	}
	return responses
}
