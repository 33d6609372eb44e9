package checkin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/auth"
	checkinDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/checkin"
	"github.com/shivam99392677/anwesha26-sub000/internal/transport"
	"github.com/shivam99392677/anwesha26-sub000/pkg/logger"
)

type ServiceAPI interface {
	Scan(operatorID int64, dto *ScanDTO) (*ScanResult, error)
	ListEventCheckIns(eventID int64) ([]*checkinDatamodel.CheckIn, error)
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

// Scan handles POST /api/v1/checkin/scan
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	operator, ok := auth.UserFromContext(r.Context())
	if !ok || operator == nil {
		h.Logger.Error("Scan: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ScanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Scan: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	result, err := h.Service.Scan(operator.ID, &dto)
	if err != nil {
		h.Logger.Error("Scan: service error", "error", err, "event_id", dto.EventID, "operator_id", operator.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

// ListEventCheckIns handles GET /api/v1/checkin/events/{id}
func (h *Handler) ListEventCheckIns(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	checkIns, err := h.Service.ListEventCheckIns(eventID)
	if err != nil {
		h.Logger.Error("ListEventCheckIns: service error", "error", err, "event_id", eventID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"event_id":  eventID,
		"check_ins": checkIns,
		"count":     len(checkIns),
	})
}
