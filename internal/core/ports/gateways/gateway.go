package gateways

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vicdotun/payvault/internal/core/domain"
)

// Result is the normalized outcome of a gateway call. Expected failures
// (declines, insufficient provider funds) come back as Success=false with a
// message; transport faults (timeouts, malformed responses) are returned as
// Go errors by the adapter methods and never as a Result.
type Result struct {
	Success   bool
	Reference string // Provider-side reference for the operation
	Status    string // Provider-reported status string, verbatim
	Message   string
	Payload   map[string]interface{} // Raw provider payload for the client
}

// InitiateRequest asks a provider to open a payment intent for a deposit.
// Reference is assigned before this call and handed to the provider as the
// idempotency/tracking key.
type InitiateRequest struct {
	Amount       decimal.Decimal
	CurrencyCode string
	Email        string
	Reference    string
	CallbackURL  string
}

// VerifyRequest checks the outcome of a previously initiated deposit.
// Reference is ours; ProviderReference is the provider-side id captured at
// initiation (PaymentIntent id, order id) for providers that cannot look up
// by merchant reference.
type VerifyRequest struct {
	Reference         string
	ProviderReference string
}

// PayoutDestination describes where a withdrawal should land. Which fields
// matter depends on the provider: Paystack uses the bank account triple,
// PayPal the email, Stripe the connected account id.
type PayoutDestination struct {
	AccountNumber string
	BankCode      string
	AccountName   string
	Email         string
	AccountID     string
}

// PayoutRequest asks a provider to move funds out to a destination.
type PayoutRequest struct {
	Amount       decimal.Decimal
	CurrencyCode string
	Reference    string
	Destination  PayoutDestination
	Narration    string
}

// PaymentGateway is the capability set the orchestrator needs from a provider.
// Adapter methods are pure network calls: they never touch the ledger store
// and never mutate a transaction.
type PaymentGateway interface {
	Name() domain.GatewayName
	Initiate(ctx context.Context, req InitiateRequest) (*Result, error)
	Verify(ctx context.Context, req VerifyRequest) (*Result, error)
	Payout(ctx context.Context, req PayoutRequest) (*Result, error)
}
