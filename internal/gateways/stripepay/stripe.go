// Package stripepay adapts the Stripe SDK to the payment gateway port.
// Deposits ride on PaymentIntents; payouts on Transfers to connected accounts.
package stripepay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/core/ports/gateways"
)

// Client wraps the Stripe SDK client.
type Client struct {
	api *client.API
}

// NewClient creates a Stripe client. A non-empty baseURL points the SDK at a
// test server instead of the live API.
func NewClient(secretKey string, baseURL string) *Client {
	var backends *stripe.Backends
	if baseURL != "" {
		backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL: stripe.String(baseURL),
		})
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}
	return &Client{api: client.New(secretKey, backends)}
}

var _ gateways.PaymentGateway = (*Client)(nil)

func (c *Client) Name() domain.GatewayName {
	return domain.GatewayStripe
}

// subunits converts a major-unit amount to the integer cents Stripe expects.
func subunits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// classify splits Stripe SDK errors into declines (Result) and faults (error).
// A stripe.Error with a 4xx status is the provider saying no; anything else is
// a transport or server fault.
func classify(err error) (*gateways.Result, error) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 {
		return &gateways.Result{
			Success: false,
			Status:  string(stripeErr.Code),
			Message: stripeErr.Msg,
		}, nil
	}
	return nil, fmt.Errorf("stripe request failed: %w", err)
}

// Initiate creates a PaymentIntent for a deposit. The client secret in the
// payload is what the frontend hands to Stripe.js.
func (c *Client) Initiate(ctx context.Context, req gateways.InitiateRequest) (*gateways.Result, error) {
	params := &stripe.PaymentIntentParams{
		Params:       stripe.Params{Context: ctx},
		Amount:       stripe.Int64(subunits(req.Amount)),
		Currency:     stripe.String(strings.ToLower(req.CurrencyCode)),
		ReceiptEmail: stripe.String(req.Email),
		Metadata:     map[string]string{"reference": req.Reference},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return classify(err)
	}

	return &gateways.Result{
		Success:   true,
		Reference: pi.ID,
		Status:    string(pi.Status),
		Payload: map[string]interface{}{
			"client_secret":     pi.ClientSecret,
			"payment_intent_id": pi.ID,
		},
	}, nil
}

// Verify fetches the PaymentIntent by its provider id. Stripe cannot look up
// by merchant reference, so the id captured at initiation is required.
func (c *Client) Verify(ctx context.Context, req gateways.VerifyRequest) (*gateways.Result, error) {
	if req.ProviderReference == "" {
		return nil, fmt.Errorf("stripe verification requires the payment intent id")
	}

	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	pi, err := c.api.PaymentIntents.Get(req.ProviderReference, params)
	if err != nil {
		return classify(err)
	}

	return &gateways.Result{
		Success:   pi.Status == stripe.PaymentIntentStatusSucceeded,
		Reference: pi.ID,
		Status:    string(pi.Status),
	}, nil
}

// Payout moves funds to a connected account via a Transfer.
func (c *Client) Payout(ctx context.Context, req gateways.PayoutRequest) (*gateways.Result, error) {
	if req.Destination.AccountID == "" {
		return nil, fmt.Errorf("stripe payout requires a connected account id")
	}

	params := &stripe.TransferParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(subunits(req.Amount)),
		Currency:      stripe.String(strings.ToLower(req.CurrencyCode)),
		Destination:   stripe.String(req.Destination.AccountID),
		TransferGroup: stripe.String(req.Reference),
	}
	if req.Narration != "" {
		params.Description = stripe.String(req.Narration)
	}

	transfer, err := c.api.Transfers.New(params)
	if err != nil {
		return classify(err)
	}

	return &gateways.Result{
		Success:   true,
		Reference: transfer.ID,
		Status:    "paid",
	}, nil
}
