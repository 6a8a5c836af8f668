// Package paypal adapts the PayPal REST API to the payment gateway port.
// Deposits use Checkout Orders v2; withdrawals use Payouts v1.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/core/ports/gateways"
)

const defaultBaseURL = "https://api-m.sandbox.paypal.com"

// Client calls the PayPal API using client-credentials OAuth. Access tokens
// are cached until shortly before expiry.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	http         *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a PayPal client. An empty baseURL selects the sandbox API.
func NewClient(clientID, clientSecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		http:         &http.Client{Timeout: 30 * time.Second},
	}
}

var _ gateways.PaymentGateway = (*Client)(nil)

func (c *Client) Name() domain.GatewayName {
	return domain.GatewayPayPal
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a valid access token, fetching a fresh one when the cached
// token has under a minute left.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Until(c.tokenExpiry) > time.Minute {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build paypal token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token request returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode paypal token response: %w", err)
	}

	c.accessToken = tr.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

// do sends an authenticated request. Transport errors and 5xx responses come
// back as Go errors; 4xx responses return the status code and body for the
// caller to treat as a decline.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (int, []byte, error) {
	token, err := c.token(ctx)
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode paypal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build paypal request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("paypal request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read paypal response: %w", err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return resp.StatusCode, nil, fmt.Errorf("paypal returned status %d", resp.StatusCode)
	}
	return resp.StatusCode, data, nil
}

type orderLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type orderResponse struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Links  []orderLink `json:"links"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func declineMessage(data []byte) string {
	var er errorResponse
	if err := json.Unmarshal(data, &er); err != nil || er.Name == "" {
		return string(data)
	}
	return er.Name + ": " + er.Message
}

// Initiate creates a checkout order. The approve link in the payload is where
// the payer is redirected.
func (c *Client) Initiate(ctx context.Context, req gateways.InitiateRequest) (*gateways.Result, error) {
	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"custom_id": req.Reference,
				"amount": map[string]string{
					"currency_code": req.CurrencyCode,
					"value":         req.Amount.StringFixed(2),
				},
			},
		},
		"application_context": map[string]string{
			"return_url": req.CallbackURL,
		},
	}

	status, data, err := c.do(ctx, http.MethodPost, "/v2/checkout/orders", body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return &gateways.Result{Success: false, Message: declineMessage(data)}, nil
	}

	var order orderResponse
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to decode paypal order: %w", err)
	}

	approveURL := ""
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approveURL = link.Href
		}
	}

	return &gateways.Result{
		Success:   true,
		Reference: order.ID,
		Status:    order.Status,
		Payload: map[string]interface{}{
			"order_id":    order.ID,
			"approve_url": approveURL,
		},
	}, nil
}

// Verify fetches the order by its provider id. PayPal cannot look up by
// merchant reference. Only a COMPLETED order counts as paid.
func (c *Client) Verify(ctx context.Context, req gateways.VerifyRequest) (*gateways.Result, error) {
	if req.ProviderReference == "" {
		return nil, fmt.Errorf("paypal verification requires the order id")
	}

	status, data, err := c.do(ctx, http.MethodGet, "/v2/checkout/orders/"+req.ProviderReference, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return &gateways.Result{Success: false, Message: declineMessage(data)}, nil
	}

	var order orderResponse
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to decode paypal order: %w", err)
	}

	return &gateways.Result{
		Success:   order.Status == "COMPLETED",
		Reference: order.ID,
		Status:    order.Status,
	}, nil
}

type payoutResponse struct {
	BatchHeader struct {
		PayoutBatchID string `json:"payout_batch_id"`
		BatchStatus   string `json:"batch_status"`
	} `json:"batch_header"`
}

// Payout sends funds to the destination email via a single-item payout batch.
func (c *Client) Payout(ctx context.Context, req gateways.PayoutRequest) (*gateways.Result, error) {
	if req.Destination.Email == "" {
		return nil, fmt.Errorf("paypal payout requires a destination email")
	}

	body := map[string]interface{}{
		"sender_batch_header": map[string]string{
			"sender_batch_id": req.Reference,
			"email_subject":   "You have a payout",
		},
		"items": []map[string]interface{}{
			{
				"recipient_type": "EMAIL",
				"receiver":       req.Destination.Email,
				"note":           req.Narration,
				"amount": map[string]string{
					"currency": req.CurrencyCode,
					"value":    req.Amount.StringFixed(2),
				},
			},
		},
	}

	status, data, err := c.do(ctx, http.MethodPost, "/v1/payments/payouts", body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return &gateways.Result{Success: false, Message: declineMessage(data)}, nil
	}

	var payout payoutResponse
	if err := json.Unmarshal(data, &payout); err != nil {
		return nil, fmt.Errorf("failed to decode paypal payout: %w", err)
	}

	return &gateways.Result{
		Success:   true,
		Reference: payout.BatchHeader.PayoutBatchID,
		Status:    payout.BatchHeader.BatchStatus,
	}, nil
}
