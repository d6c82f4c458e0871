package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/grocer-pickup/internal/api/middleware"
	"github.com/example/grocer-pickup/internal/auth"
	"github.com/example/grocer-pickup/internal/command"
	"github.com/example/grocer-pickup/internal/domain/customer"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
	"github.com/example/grocer-pickup/internal/query"
)

// AuthHandlers serves registration, login, and session endpoints for both
// storefront customers and back-office admins.
type AuthHandlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	customers    store.CustomerStore
	jwtService   *auth.JWTService
	simplified   bool
}

func NewAuthHandlers(
	cmdHandler *command.Handler,
	queryHandler *query.Handler,
	customers store.CustomerStore,
	jwtService *auth.JWTService,
	simplified bool,
) *AuthHandlers {
	return &AuthHandlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		customers:    customers,
		jwtService:   jwtService,
		simplified:   simplified,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Register creates a customer account and signs it in.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.cmdHandler.RegisterCustomer(r.Context(), command.RegisterCustomer{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.setAuthCookies(w, r, created.ID, created.Email, auth.RoleCustomer)
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user": userResponse{
			ID:        created.ID,
			Email:     created.Email,
			Name:      created.Name,
			Role:      auth.RoleCustomer,
			CreatedAt: created.CreatedAt,
		},
	})
}

// Login authenticates a customer by email and password.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if h.simplified {
		respondError(w, command.ErrSimplifiedMode.Error(), http.StatusForbidden)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.customers.GetCustomerByEmail(r.Context(), req.Email)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if c == nil || !auth.CheckPassword(req.Password, c.PasswordHash) {
		respondError(w, customer.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	_ = h.customers.RecordCustomerLogin(r.Context(), c.ID, time.Now())

	h.setAuthCookies(w, r, c.ID, c.Email, auth.RoleCustomer)
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": userResponse{
			ID:        c.ID,
			Email:     c.Email,
			Name:      c.Name,
			Role:      auth.RoleCustomer,
			CreatedAt: c.CreatedAt,
		},
	})
}

// AdminLogin authenticates a back-office admin by username and password.
func (h *AuthHandlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if h.simplified {
		respondError(w, command.ErrSimplifiedMode.Error(), http.StatusForbidden)
		return
	}

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a, err := h.customers.GetAdminByUsername(r.Context(), req.Username)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if a == nil || !auth.CheckPassword(req.Password, a.PasswordHash) {
		respondError(w, customer.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	_ = h.customers.RecordAdminLogin(r.Context(), a.ID, time.Now())

	h.setAuthCookies(w, r, a.ID, a.Email, auth.RoleAdmin)
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": userResponse{
			ID:        a.ID,
			Email:     a.Email,
			Name:      a.Username,
			Role:      auth.RoleAdmin,
			CreatedAt: a.CreatedAt,
		},
	})
}

// Logout clears the auth cookies.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "logged out"})
}

// Refresh reissues tokens for a customer holding a valid refresh token.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.simplified {
		respondError(w, command.ErrSimplifiedMode.Error(), http.StatusForbidden)
		return
	}

	refreshCookie, err := r.Cookie("refresh_token")
	if err != nil {
		respondError(w, "no refresh token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(refreshCookie.Value)
	if err != nil {
		h.clearAuthCookies(w)
		respondError(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	c, err := h.customers.GetCustomerByID(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if c == nil {
		h.clearAuthCookies(w)
		respondError(w, "account not found", http.StatusUnauthorized)
		return
	}

	h.setAuthCookies(w, r, c.ID, c.Email, auth.RoleCustomer)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "token refreshed"})
}

// Me returns the authenticated account.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, customer.ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}

	if claims.Role == auth.RoleAdmin {
		respondJSON(w, http.StatusOK, userResponse{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  auth.RoleAdmin,
		})
		return
	}

	c, err := h.queryHandler.GetCustomer(r.Context(), claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userResponse{
		ID:        c.ID,
		Email:     c.Email,
		Name:      c.Name,
		Role:      auth.RoleCustomer,
		CreatedAt: c.CreatedAt,
	})
}

func (h *AuthHandlers) setAuthCookies(w http.ResponseWriter, r *http.Request, userID int64, email, role string) {
	accessToken, accessExpiry, _ := h.jwtService.GenerateAccessToken(userID, email, role)
	refreshToken, refreshExpiry, _ := h.jwtService.GenerateRefreshToken(userID)

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		Expires:  accessExpiry,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/api/auth/refresh",
		Expires:  refreshExpiry,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandlers) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/auth/refresh",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
