package paystack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicdotun/payvault/internal/core/ports/gateways"
	"github.com/vicdotun/payvault/internal/gateways/paystack"
)

func TestInitiate_Success(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "txn_A1b2C3d4E5"
			}
		}`))
	}))
	defer server.Close()

	client := paystack.NewClient("sk_test_abc", server.URL)

	result, err := client.Initiate(context.Background(), gateways.InitiateRequest{
		Amount:       decimal.NewFromFloat(1500.50),
		CurrencyCode: "NGN",
		Email:        "ada@example.com",
		Reference:    "txn_A1b2C3d4E5",
		CallbackURL:  "http://localhost:8080/api/v1/transactions/verify/txn_A1b2C3d4E5",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "txn_A1b2C3d4E5", result.Reference)
	assert.Equal(t, "https://checkout.paystack.com/abc123", result.Payload["authorization_url"])

	// Amount crosses the wire in subunits.
	assert.Equal(t, float64(150050), captured["amount"])
	assert.Equal(t, "ada@example.com", captured["email"])
	assert.Equal(t, "NGN", captured["currency"])
}

func TestInitiate_Decline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status": false, "message": "Invalid amount passed"}`))
	}))
	defer server.Close()

	client := paystack.NewClient("sk_test_abc", server.URL)

	result, err := client.Initiate(context.Background(), gateways.InitiateRequest{
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "NGN",
		Email:        "ada@example.com",
		Reference:    "txn_A1b2C3d4E5",
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid amount passed", result.Message)
}

func TestInitiate_ServerFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := paystack.NewClient("sk_test_abc", server.URL)

	result, err := client.Initiate(context.Background(), gateways.InitiateRequest{
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "NGN",
		Email:        "ada@example.com",
		Reference:    "txn_A1b2C3d4E5",
	})

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestVerify_SuccessfulCharge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/txn_A1b2C3d4E5", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "success", "reference": "txn_A1b2C3d4E5", "gateway_response": "Successful"}
		}`))
	}))
	defer server.Close()

	client := paystack.NewClient("sk_test_abc", server.URL)

	result, err := client.Verify(context.Background(), gateways.VerifyRequest{Reference: "txn_A1b2C3d4E5"})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "success", result.Status)
}

func TestVerify_AbandonedCharge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "abandoned", "reference": "txn_A1b2C3d4E5", "gateway_response": "The transaction was not completed"}
		}`))
	}))
	defer server.Close()

	client := paystack.NewClient("sk_test_abc", server.URL)

	result, err := client.Verify(context.Background(), gateways.VerifyRequest{Reference: "txn_A1b2C3d4E5"})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "abandoned", result.Status)
}

func TestPayout_CreatesRecipientThenTransfers(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/transferrecipient":
			_, _ = w.Write([]byte(`{"status": true, "message": "Transfer recipient created", "data": {"recipient_code": "RCP_123"}}`))
		case "/transfer":
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "RCP_123", body["recipient"])
			require.Equal(t, "balance", body["source"])
			_, _ = w.Write([]byte(`{"status": true, "message": "Transfer queued", "data": {"transfer_code": "TRF_999", "status": "pending"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := paystack.NewClient("sk_test_abc", server.URL)

	result, err := client.Payout(context.Background(), gateways.PayoutRequest{
		Amount:       decimal.NewFromInt(200),
		CurrencyCode: "NGN",
		Reference:    "txn_A1b2C3d4E5",
		Destination: gateways.PayoutDestination{
			AccountNumber: "0123456789",
			BankCode:      "058",
			AccountName:   "Ada",
		},
		Narration: "payout",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "TRF_999", result.Reference)
	assert.Equal(t, []string{"/transferrecipient", "/transfer"}, paths)
}

func TestPayout_TransferDecline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transferrecipient":
			_, _ = w.Write([]byte(`{"status": true, "message": "ok", "data": {"recipient_code": "RCP_123"}}`))
		case "/transfer":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status": false, "message": "Your balance is not enough to fulfil this request"}`))
		}
	}))
	defer server.Close()

	client := paystack.NewClient("sk_test_abc", server.URL)

	result, err := client.Payout(context.Background(), gateways.PayoutRequest{
		Amount:       decimal.NewFromInt(200),
		CurrencyCode: "NGN",
		Reference:    "txn_A1b2C3d4E5",
		Destination:  gateways.PayoutDestination{AccountNumber: "0123456789", BankCode: "058", AccountName: "Ada"},
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "balance is not enough")
}
