package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vicdotun/payvault/internal/core/domain"
)

// InitiateDepositRequest starts a deposit through an active payment method.
type InitiateDepositRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethodID string          `json:"paymentMethodID" binding:"required"`
	BankAccountID   *string         `json:"bankAccountID,omitempty"`
	CurrencyCode    string          `json:"currencyCode,omitempty"`
	Description     string          `json:"description,omitempty"`
}

// InitiateDepositResponse carries the gateway payload (e.g. a redirect URL)
// plus the transaction identifier. Stable client contract.
type InitiateDepositResponse struct {
	TransactionID  string                 `json:"transaction_id"`
	Reference      string                 `json:"reference"`
	GatewayPayload map[string]interface{} `json:"gateway_payload"`
}

// InitiateWithdrawalRequest starts a withdrawal to a destination.
type InitiateWithdrawalRequest struct {
	Amount          decimal.Decimal   `json:"amount" binding:"required"`
	PaymentMethodID string            `json:"paymentMethodID" binding:"required"`
	BankAccountID   *string           `json:"bankAccountID,omitempty"`
	CurrencyCode    string            `json:"currencyCode,omitempty"`
	Destination     PayoutDestination `json:"destination" binding:"required"`
	Description     string            `json:"description,omitempty"`
}

// PayoutDestination mirrors the gateway destination fields a client may supply.
type PayoutDestination struct {
	AccountNumber string `json:"accountNumber,omitempty"`
	BankCode      string `json:"bankCode,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	Email         string `json:"email,omitempty"`
	AccountID     string `json:"accountID,omitempty"`
}

// SettlementResponse is returned whenever a balance mutation commits.
// Stable client contract: {transaction_id, new_balance}.
type SettlementResponse struct {
	TransactionID string          `json:"transaction_id"`
	Reference     string          `json:"reference"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// TransactionResponse is the read shape for a single transaction.
type TransactionResponse struct {
	TransactionID string           `json:"transactionID"`
	Reference     string           `json:"reference"`
	Type          string           `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	CurrencyCode  string           `json:"currencyCode"`
	Status        string           `json:"status"`
	Gateway       string           `json:"gateway"`
	StartBalance  *decimal.Decimal `json:"startBalance,omitempty"`
	EndBalance    *decimal.Decimal `json:"endBalance,omitempty"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ListTransactionsParams holds query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions plus the next cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Reference:     t.Reference,
		Type:          string(t.Type),
		Amount:        t.Amount,
		CurrencyCode:  t.CurrencyCode,
		Status:        string(t.Status),
		Gateway:       string(t.Gateway),
		StartBalance:  t.StartBalance,
		EndBalance:    t.EndBalance,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
