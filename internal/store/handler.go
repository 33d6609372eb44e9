package store

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/auth"
	storeDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/store"
	"github.com/shivam99392677/anwesha26-sub000/internal/transport"
	"github.com/shivam99392677/anwesha26-sub000/pkg/logger"
)

type ServiceAPI interface {
	CreateProduct(dto *CreateProductDTO) (*storeDatamodel.Product, error)
	UpdateProduct(id int64, dto *UpdateProductDTO) (*storeDatamodel.Product, error)
	ListProducts(limit, offset int) ([]*storeDatamodel.Product, error)
	ListAllProducts(limit, offset int) ([]*storeDatamodel.Product, error)
	GetProduct(id int64) (*storeDatamodel.Product, error)
	Checkout(userID int64, dto *CheckoutDTO) (*storeDatamodel.Order, error)
	GetOrder(id, userID int64) (*storeDatamodel.Order, error)
	ListUserOrders(userID int64, limit, offset int) ([]*storeDatamodel.Order, error)
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

// ListProducts handles GET /api/v1/store/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	products, err := h.Service.ListProducts(limit, offset)
	if err != nil {
		h.Logger.Error("ListProducts: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetProduct handles GET /api/v1/store/products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	p, err := h.Service.GetProduct(id)
	if err != nil {
		h.Logger.Error("GetProduct: service error", "error", err, "product_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

// CreateProduct handles POST /api/v1/admin/store/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateProduct: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	p, err := h.Service.CreateProduct(&dto)
	if err != nil {
		h.Logger.Error("CreateProduct: service error", "error", err, "name", dto.Name)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateProduct: product created", "product_id", p.ID, "name", p.Name)
	h.WriteJSON(w, http.StatusCreated, p)
}

// UpdateProduct handles PATCH /api/v1/admin/store/products/{id}
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var dto UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateProduct: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	p, err := h.Service.UpdateProduct(id, &dto)
	if err != nil {
		h.Logger.Error("UpdateProduct: service error", "error", err, "product_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

// ListAllProducts handles GET /api/v1/admin/store/products
func (h *Handler) ListAllProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	products, err := h.Service.ListAllProducts(limit, offset)
	if err != nil {
		h.Logger.Error("ListAllProducts: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// Checkout handles POST /api/v1/store/orders
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("Checkout: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CheckoutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Checkout: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	order, err := h.Service.Checkout(user.ID, &dto)
	if err != nil {
		h.Logger.Error("Checkout: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("Checkout: order placed",
		"order_id", order.ID,
		"user_id", user.ID,
		"total_paise", order.TotalPaise)
	h.WriteJSON(w, http.StatusCreated, order)
}

// GetOrder handles GET /api/v1/store/orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.Service.GetOrder(id, user.ID)
	if err != nil {
		h.Logger.Error("GetOrder: service error", "error", err, "order_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, order)
}

// ListMyOrders handles GET /api/v1/store/orders
func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := pagination(r)

	orders, err := h.Service.ListUserOrders(user.ID, limit, offset)
	if err != nil {
		h.Logger.Error("ListMyOrders: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  limit,
		"offset": offset,
	})
}
