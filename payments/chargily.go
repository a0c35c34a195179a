// payments/chargily.go
package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultAPIURL = "https://pay.chargily.net/test/api/v2"

// Client talks to the hosted Chargily checkout API. The payment flow itself
// is opaque: we create a session, redirect the customer, and later verify
// the webhook the provider signs with the shared secret.
type Client struct {
	apiURL     string
	secret     string
	httpClient *http.Client
}

func NewClient() *Client {
	apiURL := os.Getenv("CHARGILY_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		apiURL: apiURL,
		secret: os.Getenv("CHARGILY_SECRET_KEY"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type CheckoutRequest struct {
	Amount     float64             `json:"amount"`
	Currency   string              `json:"currency"`
	Metadata   []map[string]string `json:"metadata"`
	SuccessURL string              `json:"success_url"`
	FailureURL string              `json:"failure_url"`
}

type Checkout struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckout opens a hosted payment session and returns its redirect URL.
func (c *Client) CreateCheckout(req CheckoutRequest) (*Checkout, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.apiURL+"/checkouts", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach checkout API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("checkout API returned status %d: %s", resp.StatusCode, string(detail))
	}

	var checkout Checkout
	if err := json.NewDecoder(resp.Body).Decode(&checkout); err != nil {
		return nil, fmt.Errorf("failed to decode checkout response: %w", err)
	}
	return &checkout, nil
}

// ComputeSignature returns the hex HMAC-SHA256 digest the provider sends in
// the webhook signature header.
func ComputeSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a webhook payload against its signature header.
func (c *Client) VerifySignature(payload []byte, signature string) bool {
	expected := ComputeSignature(payload, c.secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
