package command

// CartItem is one storefront cart line submitted to checkout. Only the
// product id and quantity are trusted; name and price are re-read from the
// catalog before the order snapshot is taken, so any client-sent values for
// those are ignored.
type CartItem struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"quantity"`
}

// Checkout turns a cart into a pending pickup order.
type Checkout struct {
	CustomerID int64
	Items      []CartItem
}

// CompleteOrder marks a pending order as picked up.
type CompleteOrder struct {
	OrderID int64
}

// CancelOrder voids a pending order.
type CancelOrder struct {
	OrderID int64
}

// RegisterCustomer creates a storefront account.
type RegisterCustomer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Catalog commands, back office only.

type CreateProduct struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	CategoryID    *int64 `json:"categoryId"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	ImageURL      string `json:"imageUrl"`
	SKU           string `json:"sku"`
	IsActive      *bool  `json:"isActive"`
}

type UpdateProduct struct {
	ProductID     int64  `json:"-"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	CategoryID    *int64 `json:"categoryId"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	ImageURL      string `json:"imageUrl"`
	SKU           string `json:"sku"`
	IsActive      *bool  `json:"isActive"`
}

type DeleteProduct struct {
	ProductID int64
}

type CreateCategory struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ImageURL     string `json:"imageUrl"`
	DisplayOrder int    `json:"displayOrder"`
}

type UpdateCategory struct {
	CategoryID   int64  `json:"-"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ImageURL     string `json:"imageUrl"`
	DisplayOrder int    `json:"displayOrder"`
}

type DeleteCategory struct {
	CategoryID int64
}
