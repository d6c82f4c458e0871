package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/grocer-pickup/internal/api/middleware"
	"github.com/example/grocer-pickup/internal/command"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
	"github.com/example/grocer-pickup/internal/metrics"
	"github.com/example/grocer-pickup/internal/query"
)

// Handlers serves the public storefront endpoints.
type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	metrics      *metrics.ServerMetrics
}

func NewHandlers(cmdHandler *command.Handler, queryHandler *query.Handler, m *metrics.ServerMetrics) *Handlers {
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		metrics:      m,
	}
}

// Catalog

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	f := store.ProductFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.CategoryID = &id
		}
	}

	products, err := h.queryHandler.ListProducts(r.Context(), f)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := h.queryHandler.GetProduct(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queryHandler.ListCategories(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handlers) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	products, err := h.queryHandler.ListProductsByCategorySlug(
		r.Context(), slug, queryInt(r, "limit"), queryInt(r, "offset"),
	)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Checkout and order history

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []command.CartItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	receipt, err := h.cmdHandler.Checkout(r.Context(), command.Checkout{
		CustomerID: middleware.GetUserID(r.Context()),
		Items:      req.Items,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersPlaced.Inc()
	}
	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "order": receipt})
}

func (h *Handlers) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.queryHandler.ListOrdersForCustomer(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
