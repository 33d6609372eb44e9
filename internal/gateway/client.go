package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client submits encrypted transaction envelopes to the gateway's fixed
// HTTPS endpoint.
type Client struct {
	cipher     *Cipher
	endpoint   string
	merchantID string
	httpClient *http.Client
	logger     *slog.Logger
}

type ClientConfig struct {
	Endpoint   string
	MerchantID string
	Timeout    time.Duration
}

func NewClient(cipher *Cipher, cfg ClientConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cipher:     cipher,
		endpoint:   cfg.Endpoint,
		merchantID: cfg.MerchantID,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Submit marshals and encrypts the request envelope and posts it as a
// single form field alongside the merchant id. The gateway answers with
// an encrypted payload which is decrypted and returned verbatim; callers
// parse and verify it themselves.
func (c *Client) Submit(ctx context.Context, req *Request) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal gateway request: %w", err)
	}

	encrypted, err := c.cipher.Encrypt(string(payload))
	if err != nil {
		return "", fmt.Errorf("encrypt gateway request: %w", err)
	}

	form := url.Values{}
	form.Set("merchantId", c.merchantID)
	form.Set("encData", encrypted)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Info("submitting gateway transaction",
		"merchant_txn_id", req.Merchant.TxnID,
		"amount", req.Payment.Amount)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("gateway returned error",
			"status", resp.StatusCode,
			"merchant_txn_id", req.Merchant.TxnID)
		return "", fmt.Errorf("gateway error: status %d", resp.StatusCode)
	}

	decrypted, err := c.cipher.Decrypt(strings.TrimSpace(string(body)))
	if err != nil {
		return "", fmt.Errorf("decrypt gateway response: %w", err)
	}

	return decrypted, nil
}
