package event

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/auth"
	eventDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/event"
	"github.com/shivam99392677/anwesha26-sub000/internal/transport"
	"github.com/shivam99392677/anwesha26-sub000/pkg/logger"
)

type ServiceAPI interface {
	CreateEvent(dto *CreateEventDTO) (*eventDatamodel.Event, error)
	UpdateEvent(id int64, dto *UpdateEventDTO) (*eventDatamodel.Event, error)
	DeleteEvent(id int64) error
	ListEvents(limit, offset int) ([]*eventDatamodel.Event, error)
	ListAllEvents(limit, offset int) ([]*eventDatamodel.Event, error)
	GetEventBySlug(slug string) (*eventDatamodel.Event, error)
	RegisterForEvent(eventID, userID int64) (*eventDatamodel.Registration, error)
	ListUserRegistrations(userID int64) ([]*eventDatamodel.Registration, error)
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

func pagination(r *http.Request) (int, int) {
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

	return limit, offset
}

// ListEvents handles GET /api/v1/events
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	events, err := h.Service.ListEvents(limit, offset)
	if err != nil {
		h.Logger.Error("ListEvents: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"limit":  limit,
		"offset": offset,
	})
}

// GetEvent handles GET /api/v1/events/{slug}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	e, err := h.Service.GetEventBySlug(slug)
	if err != nil {
		h.Logger.Error("GetEvent: service error", "error", err, "slug", slug)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

// CreateEvent handles POST /api/v1/admin/events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var dto CreateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEvent: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	e, err := h.Service.CreateEvent(&dto)
	if err != nil {
		h.Logger.Error("CreateEvent: service error", "error", err, "slug", dto.Slug)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEvent: event created", "event_id", e.ID, "slug", e.Slug)
	h.WriteJSON(w, http.StatusCreated, e)
}

// UpdateEvent handles PATCH /api/v1/admin/events/{id}
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	var dto UpdateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEvent: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	e, err := h.Service.UpdateEvent(id, &dto)
	if err != nil {
		h.Logger.Error("UpdateEvent: service error", "error", err, "event_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

// DeleteEvent handles DELETE /api/v1/admin/events/{id}
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	if err := h.Service.DeleteEvent(id); err != nil {
		h.Logger.Error("DeleteEvent: service error", "error", err, "event_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAllEvents handles GET /api/v1/admin/events
func (h *Handler) ListAllEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	events, err := h.Service.ListAllEvents(limit, offset)
	if err != nil {
		h.Logger.Error("ListAllEvents: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"limit":  limit,
		"offset": offset,
	})
}

// RegisterForEvent handles POST /api/v1/events/{id}/register
func (h *Handler) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("RegisterForEvent: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	reg, err := h.Service.RegisterForEvent(eventID, user.ID)
	if err != nil {
		h.Logger.Error("RegisterForEvent: service error", "error", err, "event_id", eventID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RegisterForEvent: registration created",
		"registration_id", reg.ID,
		"event_id", eventID,
		"user_id", user.ID)
	h.WriteJSON(w, http.StatusCreated, reg)
}

// ListMyRegistrations handles GET /api/v1/users/me/registrations
func (h *Handler) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	regs, err := h.Service.ListUserRegistrations(user.ID)
	if err != nil {
		h.Logger.Error("ListMyRegistrations: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"registrations": regs})
}
