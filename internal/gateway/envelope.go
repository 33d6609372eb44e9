package gateway

import "encoding/json"

// StatusSuccess is the status code the gateway reports for a captured
// transaction. Any other code short-circuits the callback to the failure
// path before signature verification or persistence.
const StatusSuccess = "0300"

// Request is the transaction envelope submitted to the gateway. It is
// marshalled to JSON, encrypted wholesale and posted as a single form
// field alongside the merchant id.
type Request struct {
	Header   Header   `json:"header"`
	Merchant Merchant `json:"merchant"`
	Payment  Payment  `json:"payment"`
	Consumer Consumer `json:"consumer"`

	// UserDefined fields round-trip unmodified through the gateway and
	// carry our internal state (user id, cart contents, name, email)
	// back on the callback. Their content is trusted only after the
	// callback signature verifies.
	UserDefined UserDefined `json:"user_defined"`
}

type Header struct {
	APIVersion string `json:"api_version"`
	Channel    string `json:"channel"`
}

type Merchant struct {
	ID       string `json:"identifier"`
	Password string `json:"password"`
	TxnID    string `json:"transaction_identifier"`
	TxnDate  string `json:"transaction_date"`
}

type Payment struct {
	// Amount travels as a string; the gateway's parser rejects JSON
	// numbers.
	Amount      string `json:"amount"`
	ProductType string `json:"product_type"`
	Currency    string `json:"currency"`
}

type Consumer struct {
	Email  string `json:"email_identifier"`
	Mobile string `json:"mobile_identifier"`
}

type UserDefined struct {
	UserID string `json:"field1"`
	Cart   string `json:"field2"`
	Name   string `json:"field3"`
	Email  string `json:"field4"`
}

// CallbackResponse is the decrypted asynchronous callback envelope. It is
// the source record for a persisted payment once, and only once, the
// status check and signature verification both pass.
type CallbackResponse struct {
	StatusCode    string      `json:"status_code"`
	StatusMessage string      `json:"status_message"`
	GatewayTxnID  string      `json:"gateway_transaction_identifier"`
	MerchantTxnID string      `json:"merchant_transaction_identifier"`
	TotalAmount   string      `json:"total_amount"`
	SubChannels   []string    `json:"sub_channel"`
	BankTxnID     string      `json:"bank_transaction_identifier"`
	Signature     string      `json:"signature"`
	UserDefined   UserDefined `json:"user_defined"`
}

// ParseCallback unmarshals a decrypted callback payload.
func ParseCallback(plaintext string) (*CallbackResponse, error) {
	var resp CallbackResponse
	if err := json.Unmarshal([]byte(plaintext), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
