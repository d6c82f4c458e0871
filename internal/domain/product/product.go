package product

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidName     = errors.New("name is required")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrDuplicateSKU    = errors.New("sku is already in use")
)

// Product is a catalog entry. Prices are whole currency units; the shop's
// currency has no subunits.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CategoryID    *int64    `json:"categoryId,omitempty"`
	Price         int64     `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	SKU           string    `json:"sku,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Validate checks the fields a client controls.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
