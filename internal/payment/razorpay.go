package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	internal "github.com/shivam99392677/anwesha26-sub000/internal"
)

// RazorpayClient talks to Razorpay's orders API and verifies checkout
// callback signatures. The signature is HMAC-SHA256 over
// "<order_id>|<payment_id>" keyed with the merchant's key secret; the
// hosted checkout UI itself is Razorpay's.
type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewRazorpayClient(cfg internal.RazorpayConfig, logger *slog.Logger) *RazorpayClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}
	return &RazorpayClient{
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (c *RazorpayClient) KeyID() string {
	return c.keyID
}

// RazorpayOrder is the subset of the orders API response we use.
type RazorpayOrder struct {
	ID          string `json:"id"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
}

// CreateOrder registers an order with Razorpay so the frontend widget can
// collect the payment against it. Amount is in paise.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amountPaise int64, receipt string, notes map[string]string) (*RazorpayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		payload["notes"] = notes
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal razorpay order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create razorpay request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("creating razorpay order", "receipt", receipt, "amount_paise", amountPaise)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read razorpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("razorpay API returned error",
			"status", resp.StatusCode,
			"receipt", receipt,
			"response", string(respBody))
		return nil, fmt.Errorf("razorpay API error: status %d", resp.StatusCode)
	}

	var order RazorpayOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("unmarshal razorpay order: %w", err)
	}

	return &order, nil
}

// VerifyCheckoutSignature checks the signature Razorpay's widget returns
// after a successful checkout. A payment is trusted only if this passes.
func (c *RazorpayClient) VerifyCheckoutSignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
