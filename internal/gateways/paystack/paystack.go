// Package paystack adapts the Paystack REST API to the payment gateway port.
// Amounts on the wire are in the currency subunit (kobo for NGN).
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/core/ports/gateways"
)

const defaultBaseURL = "https://api.paystack.co"

// Client calls the Paystack API. BaseURL is overridable for tests.
type Client struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

// NewClient creates a Paystack client. An empty baseURL selects the live API.
func NewClient(secretKey string, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		secretKey: secretKey,
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

var _ gateways.PaymentGateway = (*Client)(nil)

func (c *Client) Name() domain.GatewayName {
	return domain.GatewayPaystack
}

// envelope is Paystack's standard response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do sends a request and decodes the envelope. Server-side faults (5xx) and
// transport errors surface as Go errors; business rejections come back as an
// envelope with Status=false.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode paystack request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("paystack returned status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode paystack response: %w", err)
	}
	return &env, nil
}

// subunits converts a major-unit amount to the integer subunit Paystack expects.
func subunits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Initiate opens a Paystack checkout session for a deposit.
func (c *Client) Initiate(ctx context.Context, req gateways.InitiateRequest) (*gateways.Result, error) {
	body := map[string]interface{}{
		"email":        req.Email,
		"amount":       subunits(req.Amount),
		"currency":     req.CurrencyCode,
		"reference":    req.Reference,
		"callback_url": req.CallbackURL,
	}

	env, err := c.do(ctx, http.MethodPost, "/transaction/initialize", body)
	if err != nil {
		return nil, err
	}
	if !env.Status {
		return &gateways.Result{Success: false, Message: env.Message}, nil
	}

	var data initializeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode paystack initialize data: %w", err)
	}

	return &gateways.Result{
		Success:   true,
		Reference: data.Reference,
		Status:    "pending",
		Message:   env.Message,
		Payload: map[string]interface{}{
			"authorization_url": data.AuthorizationURL,
			"access_code":       data.AccessCode,
		},
	}, nil
}

type verifyData struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	GatewayResponse string `json:"gateway_response"`
}

// Verify checks a deposit by merchant reference. Paystack reports the charge
// status as "success", "failed" or "abandoned".
func (c *Client) Verify(ctx context.Context, req gateways.VerifyRequest) (*gateways.Result, error) {
	env, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+req.Reference, nil)
	if err != nil {
		return nil, err
	}
	if !env.Status {
		return &gateways.Result{Success: false, Message: env.Message}, nil
	}

	var data verifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode paystack verify data: %w", err)
	}

	return &gateways.Result{
		Success:   data.Status == "success",
		Reference: data.Reference,
		Status:    data.Status,
		Message:   data.GatewayResponse,
	}, nil
}

type recipientData struct {
	RecipientCode string `json:"recipient_code"`
}

type transferData struct {
	TransferCode string `json:"transfer_code"`
	Status       string `json:"status"`
}

// Payout creates a transfer recipient for the destination bank account and
// initiates a balance transfer to it.
func (c *Client) Payout(ctx context.Context, req gateways.PayoutRequest) (*gateways.Result, error) {
	recipientBody := map[string]interface{}{
		"type":           "nuban",
		"name":           req.Destination.AccountName,
		"account_number": req.Destination.AccountNumber,
		"bank_code":      req.Destination.BankCode,
		"currency":       req.CurrencyCode,
	}

	env, err := c.do(ctx, http.MethodPost, "/transferrecipient", recipientBody)
	if err != nil {
		return nil, err
	}
	if !env.Status {
		return &gateways.Result{Success: false, Message: env.Message}, nil
	}

	var recipient recipientData
	if err := json.Unmarshal(env.Data, &recipient); err != nil {
		return nil, fmt.Errorf("failed to decode paystack recipient data: %w", err)
	}

	transferBody := map[string]interface{}{
		"source":    "balance",
		"amount":    subunits(req.Amount),
		"recipient": recipient.RecipientCode,
		"reference": req.Reference,
		"reason":    req.Narration,
	}

	env, err = c.do(ctx, http.MethodPost, "/transfer", transferBody)
	if err != nil {
		return nil, err
	}
	if !env.Status {
		return &gateways.Result{Success: false, Message: env.Message}, nil
	}

	var transfer transferData
	if err := json.Unmarshal(env.Data, &transfer); err != nil {
		return nil, fmt.Errorf("failed to decode paystack transfer data: %w", err)
	}

	return &gateways.Result{
		Success:   true,
		Reference: transfer.TransferCode,
		Status:    transfer.Status,
		Message:   env.Message,
	}, nil
}
