package customer

import (
	"errors"
	"time"
)

var (
	ErrUnauthorized       = errors.New("authentication required")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Customer is a storefront account. The order subsystem treats it as opaque
// identity data; only id/name/email ever cross the API boundary.
type Customer struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

// Admin is a back-office account. Admins fulfil orders by scanning pickup
// codes and manage the catalog.
type Admin struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}
