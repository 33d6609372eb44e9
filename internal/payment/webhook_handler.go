package payment

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shivam99392677/anwesha26-sub000/internal/transport"
	"github.com/shivam99392677/anwesha26-sub000/pkg/logger"
)

// WebhookHandler terminates the gateway's asynchronous form-post callback.
// It is unauthenticated by nature; the callback's own encryption and
// signature are the authentication. The browser is redirected to the
// frontend afterwards, and the failure redirect is identical for every
// kind of rejection.
type WebhookHandler struct {
	*transport.BaseHandler
	Service         ServiceAPI
	SuccessRedirect string
	FailureRedirect string
}

func NewWebhookHandler(service ServiceAPI, successRedirect, failureRedirect string) *WebhookHandler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &WebhookHandler{
		BaseHandler:     transport.NewBaseHandler(lg),
		Service:         service,
		SuccessRedirect: successRedirect,
		FailureRedirect: failureRedirect,
	}
}

// GatewayCallback handles POST /api/v1/payment/callback
func (h *WebhookHandler) GatewayCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Logger.Warn("GatewayCallback: malformed form body", "error", err)
		h.redirect(w, r, h.FailureRedirect, "")
		return
	}

	encData := r.FormValue("encData")
	if encData == "" {
		h.Logger.Warn("GatewayCallback: missing encData field")
		h.redirect(w, r, h.FailureRedirect, "")
		return
	}

	result, err := h.Service.HandleGatewayCallback(r.Context(), encData)
	if err != nil {
		h.Logger.Warn("GatewayCallback: callback rejected", "error", err)
		h.redirect(w, r, h.FailureRedirect, "")
		return
	}

	if !result.Paid {
		h.Logger.Info("GatewayCallback: payment not captured", "merchant_txn_id", result.MerchantTxnID)
		h.redirect(w, r, h.FailureRedirect, result.MerchantTxnID)
		return
	}

	h.Logger.Info("GatewayCallback: payment captured", "merchant_txn_id", result.MerchantTxnID)
	h.redirect(w, r, h.SuccessRedirect, result.MerchantTxnID)
}

func (h *WebhookHandler) redirect(w http.ResponseWriter, r *http.Request, target, merchantTxnID string) {
	if merchantTxnID != "" {
		u, err := url.Parse(target)
		if err == nil {
			q := u.Query()
			q.Set("txn", merchantTxnID)
			u.RawQuery = q.Encode()
			target = u.String()
		}
	}
	http.Redirect(w, r, target, http.StatusFound)
}
