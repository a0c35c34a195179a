package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	client := &Client{secret: "whsec_test"}
	payload := []byte(`{"type":"checkout.paid"}`)

	sig := ComputeSignature(payload, "whsec_test")
	assert.True(t, client.VerifySignature(payload, sig))

	assert.False(t, client.VerifySignature([]byte(`{"type":"checkout.failed"}`), sig))
	assert.False(t, client.VerifySignature(payload, "deadbeef"))
	assert.False(t, client.VerifySignature(payload, ""))
}

func TestCreateCheckout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkouts", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var req CheckoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 135.0, req.Amount)
		assert.Equal(t, "dzd", req.Currency)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Checkout{ID: "ch_123", CheckoutURL: "https://pay.example/ch_123"})
	}))
	defer srv.Close()

	client := &Client{apiURL: srv.URL, secret: "sk_test", httpClient: srv.Client()}

	checkout, err := client.CreateCheckout(CheckoutRequest{
		Amount:   135,
		Currency: "dzd",
		Metadata: []map[string]string{{"groupId": "g1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ch_123", checkout.ID)
	assert.Equal(t, "https://pay.example/ch_123", checkout.CheckoutURL)
}

func TestCreateCheckoutAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := &Client{apiURL: srv.URL, secret: "bad", httpClient: srv.Client()}

	_, err := client.CreateCheckout(CheckoutRequest{Amount: 100, Currency: "dzd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
