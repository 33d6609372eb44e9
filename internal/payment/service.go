package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	internal "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/payment"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/events"
	"github.com/shivam99392677/anwesha26-sub000/internal/gateway"
)

// ServiceAPI is the payment surface the HTTP handlers depend on.
type ServiceAPI interface {
	InitiateRazorpay(ctx context.Context, userID int64, dto *CreateRazorpayOrderDTO) (*RazorpayCheckout, error)
	ConfirmRazorpay(ctx context.Context, dto *VerifyRazorpayDTO) (*payment.Payment, error)
	InitiateGateway(ctx context.Context, userID int64, email, mobile, cart string, dto *InitiateGatewayDTO) (*GatewayCheckout, error)
	HandleGatewayCallback(ctx context.Context, encrypted string) (*CallbackResult, error)
	ReconcileGateway(ctx context.Context, userID int64, dto *GatewayStatusDTO) (*payment.Payment, error)
	ListUserPayments(userID int64, limit, offset int) ([]*payment.Payment, error)
}

// GatewayClientAPI abstracts the alternate gateway's dual-verification
// endpoint. Submit returns the decrypted response plaintext.
type GatewayClientAPI interface {
	Submit(ctx context.Context, req *gateway.Request) (string, error)
}

// RazorpayAPI abstracts the Razorpay client for testing.
type RazorpayAPI interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string, notes map[string]string) (*RazorpayOrder, error)
	VerifyCheckoutSignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// Service orchestrates both payment providers. The Razorpay leg trusts a
// checkout only after its HMAC verifies; the alternate-gateway leg trusts
// a callback only after decryption, a success status code and an
// independent HMAC signature all pass, in that order.
type Service struct {
	repo          RepositoryAPI
	razorpay      RazorpayAPI
	cipher        *gateway.Cipher
	gatewayClient GatewayClientAPI
	gatewayCfg    internal.GatewayConfig
	orders        OrderMarker
	eventBus      *events.EventBus
	logger        *slog.Logger
}

func NewService(repo RepositoryAPI, razorpay RazorpayAPI, cipher *gateway.Cipher, gatewayClient GatewayClientAPI, gatewayCfg internal.GatewayConfig, orders OrderMarker, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		razorpay:      razorpay,
		cipher:        cipher,
		gatewayClient: gatewayClient,
		gatewayCfg:    gatewayCfg,
		orders:        orders,
		eventBus:      eventBus,
		logger:        logger,
	}
}

func newMerchantTxnID() string {
	return "ANWTXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}

// InitiateRazorpay creates a pending payment record and registers the
// order with Razorpay so the frontend can open the checkout widget.
func (s *Service) InitiateRazorpay(ctx context.Context, userID int64, dto *CreateRazorpayOrderDTO) (*RazorpayCheckout, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("razorpay initiation validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	merchantTxnID := newMerchantTxnID()

	p := &payment.Payment{
		OrderID:       dto.OrderID,
		EventID:       dto.EventID,
		UserID:        userID,
		MerchantTxnID: merchantTxnID,
		Gateway:       payment.GatewayRazorpay,
		AmountPaise:   dto.AmountPaise,
		Status:        payment.StatusPending,
	}
	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create payment record", "error", err, "user_id", userID)
		return nil, fmt.Errorf("create payment record: %w", err)
	}

	order, err := s.razorpay.CreateOrder(ctx, dto.AmountPaise, merchantTxnID, map[string]string{
		"merchant_txn_id": merchantTxnID,
	})
	if err != nil {
		reason := err.Error()
		if updateErr := s.repo.UpdateStatus(p.ID, payment.StatusFailed, nil, nil, nil, &reason); updateErr != nil {
			s.logger.Error("failed to mark payment failed after razorpay error", "error", updateErr, "payment_id", p.ID)
		}
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}

	gwID := order.ID
	if err := s.repo.UpdateStatus(p.ID, payment.StatusPending, &gwID, nil, nil, nil); err != nil {
		s.logger.Error("failed to attach razorpay order id", "error", err, "payment_id", p.ID)
	}

	s.logger.Info("razorpay checkout initiated",
		"payment_id", p.ID,
		"merchant_txn_id", merchantTxnID,
		"razorpay_order_id", order.ID,
		"amount_paise", dto.AmountPaise)

	return &RazorpayCheckout{
		MerchantTxnID:   merchantTxnID,
		RazorpayOrderID: order.ID,
		RazorpayKeyID:   s.razorpay.KeyID(),
		AmountPaise:     dto.AmountPaise,
		Currency:        "INR",
	}, nil
}

// ConfirmRazorpay verifies the widget's callback signature and, only on
// success, marks the payment paid and publishes the completion event.
func (s *Service) ConfirmRazorpay(ctx context.Context, dto *VerifyRazorpayDTO) (*payment.Payment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByMerchantTxnID(dto.MerchantTxnID)
	if err != nil {
		s.logger.Error("payment not found for razorpay confirmation", "merchant_txn_id", dto.MerchantTxnID, "error", err)
		return nil, ErrPaymentNotFound
	}

	if !s.razorpay.VerifyCheckoutSignature(dto.RazorpayOrderID, dto.RazorpayPaymentID, dto.RazorpaySignature) {
		s.logger.Warn("razorpay signature verification failed",
			"merchant_txn_id", dto.MerchantTxnID,
			"razorpay_order_id", dto.RazorpayOrderID)

		reason := "checkout signature verification failed"
		if updateErr := s.repo.UpdateStatus(p.ID, payment.StatusFailed, nil, nil, nil, &reason); updateErr != nil {
			s.logger.Error("failed to mark payment failed", "error", updateErr, "payment_id", p.ID)
		}
		return nil, ErrCallbackRejected
	}

	gwTxnID := dto.RazorpayPaymentID
	raw, _ := json.Marshal(dto)
	if err := s.repo.UpdateStatus(p.ID, payment.StatusSuccess, &gwTxnID, nil, raw, nil); err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	s.settle(ctx, p, dto.RazorpayPaymentID)

	return s.repo.GetByID(p.ID)
}

// InitiateGateway builds and encrypts the transaction envelope for the
// alternate gateway. The user id, cart contents, name and email travel in
// the user-defined passthrough fields and come back on the callback; they
// are trusted there only after the signature verifies.
func (s *Service) InitiateGateway(ctx context.Context, userID int64, email, mobile, cart string, dto *InitiateGatewayDTO) (*GatewayCheckout, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	merchantTxnID := newMerchantTxnID()

	p := &payment.Payment{
		OrderID:       dto.OrderID,
		EventID:       dto.EventID,
		UserID:        userID,
		MerchantTxnID: merchantTxnID,
		Gateway:       payment.GatewayTPSL,
		AmountPaise:   dto.AmountPaise,
		Status:        payment.StatusPending,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, fmt.Errorf("create payment record: %w", err)
	}

	req := &gateway.Request{
		Header: gateway.Header{APIVersion: "2.0", Channel: "WEB"},
		Merchant: gateway.Merchant{
			ID:       s.gatewayCfg.MerchantID,
			Password: s.gatewayCfg.MerchantPassword,
			TxnID:    merchantTxnID,
			TxnDate:  time.Now().Format("02-01-2006 15:04:05"),
		},
		Payment: gateway.Payment{
			Amount:      fmt.Sprintf("%d.%02d", dto.AmountPaise/100, dto.AmountPaise%100),
			ProductType: "DEFAULT",
			Currency:    "INR",
		},
		Consumer: gateway.Consumer{Email: email, Mobile: mobile},
		UserDefined: gateway.UserDefined{
			UserID: fmt.Sprintf("%d", userID),
			Cart:   cart,
			Name:   email,
			Email:  email,
		},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal gateway request: %w", err)
	}

	encrypted, err := s.cipher.Encrypt(string(payload))
	if err != nil {
		return nil, fmt.Errorf("encrypt gateway request: %w", err)
	}

	s.logger.Info("gateway checkout initiated",
		"payment_id", p.ID,
		"merchant_txn_id", merchantTxnID,
		"amount_paise", dto.AmountPaise)

	return &GatewayCheckout{
		Endpoint:      s.gatewayCfg.Endpoint,
		MerchantID:    s.gatewayCfg.MerchantID,
		EncryptedData: encrypted,
		MerchantTxnID: merchantTxnID,
	}, nil
}

// HandleGatewayCallback processes the asynchronous callback. Order of
// checks is fixed: decrypt, parse, status code, signature. A non-success
// status short-circuits before signature verification; the callback
// envelope is persisted only when every check passed. All integrity
// failures surface as the same ErrCallbackRejected so the redirect leaks
// nothing about which check tripped.
func (s *Service) HandleGatewayCallback(ctx context.Context, encrypted string) (*CallbackResult, error) {
	plaintext, err := s.cipher.Decrypt(encrypted)
	if err != nil {
		s.logger.Warn("gateway callback decryption failed", "error", err)
		return nil, ErrCallbackRejected
	}

	return s.processGatewayResponse(ctx, plaintext)
}

// processGatewayResponse settles a decrypted gateway envelope. It is shared
// by the asynchronous callback and the server-side status inquiry, so both
// paths apply identical verification.
func (s *Service) processGatewayResponse(ctx context.Context, plaintext string) (*CallbackResult, error) {
	resp, err := gateway.ParseCallback(plaintext)
	if err != nil {
		s.logger.Warn("gateway callback parse failed", "error", err)
		return nil, ErrCallbackRejected
	}

	p, err := s.repo.GetByMerchantTxnID(resp.MerchantTxnID)
	if err != nil {
		s.logger.Warn("gateway callback for unknown transaction", "merchant_txn_id", resp.MerchantTxnID)
		return nil, ErrCallbackRejected
	}

	if resp.StatusCode != gateway.StatusSuccess {
		s.logger.Info("gateway reported non-success status",
			"merchant_txn_id", resp.MerchantTxnID,
			"status_code", resp.StatusCode,
			"status_message", resp.StatusMessage)

		reason := fmt.Sprintf("gateway status %s: %s", resp.StatusCode, resp.StatusMessage)
		if updateErr := s.repo.UpdateStatus(p.ID, payment.StatusFailed, nil, nil, nil, &reason); updateErr != nil {
			s.logger.Error("failed to mark payment failed", "error", updateErr, "payment_id", p.ID)
		}
		return &CallbackResult{Paid: false, MerchantTxnID: resp.MerchantTxnID}, nil
	}

	if !s.cipher.VerifySignature(resp) {
		s.logger.Warn("gateway callback signature verification failed",
			"merchant_txn_id", resp.MerchantTxnID,
			"gateway_txn_id", resp.GatewayTxnID)

		reason := "callback signature verification failed"
		if updateErr := s.repo.UpdateStatus(p.ID, payment.StatusFailed, nil, nil, nil, &reason); updateErr != nil {
			s.logger.Error("failed to mark payment failed", "error", updateErr, "payment_id", p.ID)
		}
		return nil, ErrCallbackRejected
	}

	raw, _ := json.Marshal(resp)
	if err := s.repo.UpdateStatus(p.ID, payment.StatusSuccess, &resp.GatewayTxnID, &resp.BankTxnID, raw, nil); err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	s.logger.Info("gateway payment verified",
		"payment_id", p.ID,
		"merchant_txn_id", resp.MerchantTxnID,
		"gateway_txn_id", resp.GatewayTxnID,
		"bank_txn_id", resp.BankTxnID)

	s.settle(ctx, p, resp.GatewayTxnID)

	return &CallbackResult{Paid: true, MerchantTxnID: resp.MerchantTxnID}, nil
}

// ReconcileGateway re-queries the gateway for a pending transaction whose
// callback never arrived, or arrived and was lost. The inquiry response is
// verified exactly like a callback before any state changes.
func (s *Service) ReconcileGateway(ctx context.Context, userID int64, dto *GatewayStatusDTO) (*payment.Payment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByMerchantTxnID(dto.MerchantTxnID)
	if err != nil || p.UserID != userID {
		return nil, ErrPaymentNotFound
	}
	if p.Gateway != payment.GatewayTPSL {
		return nil, internal.NewValidationError("payment did not go through the gateway", internal.ErrCodeValidationFailed)
	}
	if p.Status != payment.StatusPending {
		return p, nil
	}
	if s.gatewayClient == nil {
		return nil, fmt.Errorf("gateway client not configured")
	}

	req := &gateway.Request{
		Header: gateway.Header{APIVersion: "2.0", Channel: "WEB"},
		Merchant: gateway.Merchant{
			ID:       s.gatewayCfg.MerchantID,
			Password: s.gatewayCfg.MerchantPassword,
			TxnID:    p.MerchantTxnID,
			TxnDate:  time.Now().Format("02-01-2006 15:04:05"),
		},
		Payment: gateway.Payment{
			Amount:      fmt.Sprintf("%d.%02d", p.AmountPaise/100, p.AmountPaise%100),
			ProductType: "DEFAULT",
			Currency:    "INR",
		},
		UserDefined: gateway.UserDefined{UserID: fmt.Sprintf("%d", userID)},
	}

	plaintext, err := s.gatewayClient.Submit(ctx, req)
	if err != nil {
		s.logger.Error("gateway status inquiry failed", "error", err, "merchant_txn_id", p.MerchantTxnID)
		return nil, fmt.Errorf("gateway status inquiry: %w", err)
	}

	if _, err := s.processGatewayResponse(ctx, plaintext); err != nil {
		return nil, err
	}

	return s.repo.GetByMerchantTxnID(dto.MerchantTxnID)
}

// settle runs the post-verification side effects shared by both gateways.
func (s *Service) settle(ctx context.Context, p *payment.Payment, gatewayTxnID string) {
	if p.OrderID != nil && s.orders != nil {
		if err := s.orders.MarkOrderPaid(*p.OrderID); err != nil {
			s.logger.Error("failed to mark order paid", "error", err, "order_id", *p.OrderID, "payment_id", p.ID)
		}
	}

	if s.eventBus != nil {
		event := events.NewPaymentCompletedEvent(
			fmt.Sprintf("%d", p.ID),
			p.MerchantTxnID,
			p.Gateway,
			p.UserID,
			p.AmountPaise,
		)
		s.eventBus.Publish(ctx, event)
		s.logger.Info("published payment completed event", "event_id", event.EventID(), "gateway_txn_id", gatewayTxnID)
	}
}

func (s *Service) ListUserPayments(userID int64, limit, offset int) ([]*payment.Payment, error) {
	return s.repo.ListByUserID(userID, limit, offset)
}
