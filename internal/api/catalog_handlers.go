package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/grocer-pickup/internal/command"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
)

// Admin catalog management. The admin product list includes inactive rows.

func (h *Handlers) AdminGetProducts(w http.ResponseWriter, r *http.Request) {
	f := store.ProductFilter{
		Search:          r.URL.Query().Get("search"),
		IncludeInactive: true,
		Limit:           queryInt(r, "limit"),
		Offset:          queryInt(r, "offset"),
	}
	products, err := h.queryHandler.ListProducts(r.Context(), f)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateProduct
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.cmdHandler.CreateProduct(r.Context(), cmd)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var cmd command.UpdateProduct
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	cmd.ProductID = id

	updated, err := h.cmdHandler.UpdateProduct(r.Context(), cmd)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.cmdHandler.DeleteProduct(r.Context(), command.DeleteProduct{ProductID: id}); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "product deleted"})
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateCategory
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.cmdHandler.CreateCategory(r.Context(), cmd)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	var cmd command.UpdateCategory
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	cmd.CategoryID = id

	updated, err := h.cmdHandler.UpdateCategory(r.Context(), cmd)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	if err := h.cmdHandler.DeleteCategory(r.Context(), command.DeleteCategory{CategoryID: id}); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "category deleted"})
}
