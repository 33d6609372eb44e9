package admin

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/transport"
	"github.com/shivam99392677/anwesha26-sub000/pkg/logger"
)

type ServiceAPI interface {
	ExportUsersCSV(w io.Writer) error
	ExportPaymentsCSV(w io.Writer, status string) error
	ExportUsersPDF(w io.Writer) error
	Broadcast(dto *BroadcastDTO) (*BroadcastResult, error)
}

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

// ExportUsersCSV handles GET /api/v1/admin/export/users.csv
func (h *Handler) ExportUsersCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="anwesha_users.csv"`)

	if err := h.Service.ExportUsersCSV(w); err != nil {
		// Headers are already out; all we can do is log.
		h.Logger.Error("ExportUsersCSV: export failed", "error", err)
	}
}

// ExportPaymentsCSV handles GET /api/v1/admin/export/payments.csv
func (h *Handler) ExportPaymentsCSV(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="anwesha_payments.csv"`)

	if err := h.Service.ExportPaymentsCSV(w, status); err != nil {
		h.Logger.Error("ExportPaymentsCSV: export failed", "error", err, "status", status)
	}
}

// ExportUsersPDF handles GET /api/v1/admin/export/users.pdf
func (h *Handler) ExportUsersPDF(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="anwesha_users.pdf"`)

	if err := h.Service.ExportUsersPDF(w); err != nil {
		h.Logger.Error("ExportUsersPDF: export failed", "error", err)
	}
}

// Broadcast handles POST /api/v1/admin/broadcast
func (h *Handler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var dto BroadcastDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Broadcast: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	result, err := h.Service.Broadcast(&dto)
	if err != nil {
		h.Logger.Error("Broadcast: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("Broadcast: sent", "recipients", result.Recipients, "failed", result.Failed)
	h.WriteJSON(w, http.StatusOK, result)
}
