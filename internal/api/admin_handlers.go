package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/grocer-pickup/internal/domain/order"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
)

// Admin order board

func (h *Handlers) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	f := store.OrderFilter{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		f.Status = &status
	}

	orders, err := h.queryHandler.ListOrders(r.Context(), f)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queryHandler.OrderStats(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetOrderByReference resolves a scanned pickup code.
func (h *Handlers) GetOrderByReference(w http.ResponseWriter, r *http.Request) {
	found, err := h.queryHandler.GetOrderByReference(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, found)
}

// UpdateOrderByReference applies a terminal status to a scanned order.
func (h *Handlers) UpdateOrderByReference(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	updated, err := h.cmdHandler.TransitionOrderByReference(r.Context(), chi.URLParam(r, "reference"), status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "order": updated})
}
