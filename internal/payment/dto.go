package payment

import (
	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/common/validation"
)

// CreateRazorpayOrderDTO starts a Razorpay checkout for an order or an
// event registration fee.
type CreateRazorpayOrderDTO struct {
	OrderID     *int64 `json:"order_id,omitempty"`
	EventID     *int64 `json:"event_id,omitempty"`
	AmountPaise int64  `json:"amount_paise"`
}

func (d *CreateRazorpayOrderDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("amount_paise", d.AmountPaise).Required().MinInt(100, errors.ErrCodeInvalidAmount)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	if d.OrderID == nil && d.EventID == nil {
		return errors.NewValidationError("order_id or event_id is required", errors.ErrCodeValidationFailed)
	}
	return nil
}

// VerifyRazorpayDTO carries the checkout callback fields the frontend
// receives from Razorpay's widget.
type VerifyRazorpayDTO struct {
	MerchantTxnID     string `json:"merchant_txn_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (d *VerifyRazorpayDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("merchant_txn_id", d.MerchantTxnID).Required()
	validator.Field("razorpay_order_id", d.RazorpayOrderID).Required()
	validator.Field("razorpay_payment_id", d.RazorpayPaymentID).Required()
	validator.Field("razorpay_signature", d.RazorpaySignature).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// InitiateGatewayDTO starts an alternate-gateway transaction. Mobile and
// cart come from the frontend; email is taken from the authenticated user.
type InitiateGatewayDTO struct {
	OrderID     *int64 `json:"order_id,omitempty"`
	EventID     *int64 `json:"event_id,omitempty"`
	AmountPaise int64  `json:"amount_paise"`
	Mobile      string `json:"mobile"`
	Cart        string `json:"cart,omitempty"`
}

func (d *InitiateGatewayDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("amount_paise", d.AmountPaise).Required().MinInt(100, errors.ErrCodeInvalidAmount)
	validator.Field("mobile", d.Mobile).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	if d.OrderID == nil && d.EventID == nil {
		return errors.NewValidationError("order_id or event_id is required", errors.ErrCodeValidationFailed)
	}
	return nil
}

// GatewayStatusDTO asks the gateway what became of a transaction whose
// callback has not settled it yet.
type GatewayStatusDTO struct {
	MerchantTxnID string `json:"merchant_txn_id"`
}

func (d *GatewayStatusDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("merchant_txn_id", d.MerchantTxnID).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// GatewayCheckout is what the frontend needs to form-post the user to the
// gateway's hosted page.
type GatewayCheckout struct {
	Endpoint      string `json:"endpoint"`
	MerchantID    string `json:"merchant_id"`
	EncryptedData string `json:"enc_data"`
	MerchantTxnID string `json:"merchant_txn_id"`
}

// RazorpayCheckout is what the frontend needs to open Razorpay's widget.
type RazorpayCheckout struct {
	MerchantTxnID   string `json:"merchant_txn_id"`
	RazorpayOrderID string `json:"razorpay_order_id"`
	RazorpayKeyID   string `json:"razorpay_key_id"`
	AmountPaise     int64  `json:"amount_paise"`
	Currency        string `json:"currency"`
}
