package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/example/grocer-pickup/internal/auth"
	"github.com/example/grocer-pickup/internal/command"
	"github.com/example/grocer-pickup/internal/domain/category"
	"github.com/example/grocer-pickup/internal/domain/customer"
	"github.com/example/grocer-pickup/internal/domain/order"
	"github.com/example/grocer-pickup/internal/domain/product"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]any{"success": false, "message": message})
}

// respondDomainError maps domain errors onto HTTP statuses. Unrecognized
// errors are logged and surface as an opaque 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customer.ErrUnauthorized),
		errors.Is(err, customer.ErrInvalidCredentials):
		respondError(w, err.Error(), http.StatusUnauthorized)

	case errors.Is(err, command.ErrOrderingDisabled),
		errors.Is(err, command.ErrSimplifiedMode):
		respondError(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, customer.ErrCustomerNotFound):
		respondError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, customer.ErrEmailTaken),
		errors.Is(err, product.ErrDuplicateSKU),
		errors.Is(err, category.ErrDuplicateSlug):
		respondError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, product.ErrInvalidName),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, category.ErrInvalidName),
		errors.Is(err, category.ErrInvalidSlug),
		errors.Is(err, auth.ErrPasswordTooShort):
		respondError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, order.ErrReferenceCodeExhausted):
		log.Printf("[API] ALERT: reference code space exhausted: %v", err)
		respondError(w, "could not allocate a pickup code, please retry", http.StatusInternalServerError)

	default:
		log.Printf("[API] internal error: %v", err)
		respondError(w, "internal server error", http.StatusInternalServerError)
	}
}
