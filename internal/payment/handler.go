package payment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/auth"
	"github.com/shivam99392677/anwesha26-sub000/internal/transport"
	"github.com/shivam99392677/anwesha26-sub000/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// CreateRazorpayOrder handles POST /api/v1/payments/razorpay/order
func (h *Handler) CreateRazorpayOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateRazorpayOrder: user not found in context")
		h.HandleError(w, errors.NewUnauthorizedError("authentication required", errors.ErrCodeInvalidToken))
		return
	}

	var dto CreateRazorpayOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateRazorpayOrder: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	checkout, err := h.Service.InitiateRazorpay(r.Context(), user.ID, &dto)
	if err != nil {
		h.Logger.Error("CreateRazorpayOrder: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateRazorpayOrder: checkout created",
		"user_id", user.ID,
		"merchant_txn_id", checkout.MerchantTxnID,
		"razorpay_order_id", checkout.RazorpayOrderID)

	h.WriteJSON(w, http.StatusCreated, checkout)
}

// VerifyRazorpay handles POST /api/v1/payments/razorpay/verify
func (h *Handler) VerifyRazorpay(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("VerifyRazorpay: user not found in context")
		h.HandleError(w, errors.NewUnauthorizedError("authentication required", errors.ErrCodeInvalidToken))
		return
	}

	var dto VerifyRazorpayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("VerifyRazorpay: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	p, err := h.Service.ConfirmRazorpay(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("VerifyRazorpay: service error", "error", err,
			"user_id", user.ID,
			"merchant_txn_id", dto.MerchantTxnID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("VerifyRazorpay: payment verified",
		"user_id", user.ID,
		"payment_id", p.ID,
		"merchant_txn_id", p.MerchantTxnID)

	h.WriteJSON(w, http.StatusOK, p)
}

// InitiateGateway handles POST /api/v1/payments/gateway/initiate
func (h *Handler) InitiateGateway(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("InitiateGateway: user not found in context")
		h.HandleError(w, errors.NewUnauthorizedError("authentication required", errors.ErrCodeInvalidToken))
		return
	}

	var dto InitiateGatewayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("InitiateGateway: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	checkout, err := h.Service.InitiateGateway(r.Context(), user.ID, user.Email, dto.Mobile, dto.Cart, &dto)
	if err != nil {
		h.Logger.Error("InitiateGateway: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("InitiateGateway: checkout created",
		"user_id", user.ID,
		"merchant_txn_id", checkout.MerchantTxnID)

	h.WriteJSON(w, http.StatusCreated, checkout)
}

// ReconcileGateway handles POST /api/v1/payments/gateway/status
func (h *Handler) ReconcileGateway(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("ReconcileGateway: user not found in context")
		h.HandleError(w, errors.NewUnauthorizedError("authentication required", errors.ErrCodeInvalidToken))
		return
	}

	var dto GatewayStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ReconcileGateway: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	p, err := h.Service.ReconcileGateway(r.Context(), user.ID, &dto)
	if err != nil {
		h.Logger.Error("ReconcileGateway: service error", "error", err,
			"user_id", user.ID,
			"merchant_txn_id", dto.MerchantTxnID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ReconcileGateway: status refreshed",
		"user_id", user.ID,
		"merchant_txn_id", p.MerchantTxnID,
		"status", p.Status)

	h.WriteJSON(w, http.StatusOK, p)
}

// GetUserPayments handles GET /api/v1/payments
func (h *Handler) GetUserPayments(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetUserPayments: user not found in context")
		h.HandleError(w, errors.NewUnauthorizedError("authentication required", errors.ErrCodeInvalidToken))
		return
	}

	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	payments, err := h.Service.ListUserPayments(user.ID, limit, offset)
	if err != nil {
		h.Logger.Error("GetUserPayments: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get payments")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
		"limit":    limit,
		"offset":   offset,
	})
}
