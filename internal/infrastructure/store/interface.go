package store

import (
	"context"
	"time"

	"github.com/example/grocer-pickup/internal/domain/category"
	"github.com/example/grocer-pickup/internal/domain/customer"
	"github.com/example/grocer-pickup/internal/domain/order"
	"github.com/example/grocer-pickup/internal/domain/product"
)

// OrderFilter narrows ListOrders. A zero Limit means the default page size.
type OrderFilter struct {
	Status *order.Status
	Limit  int
	Offset int
}

// ProductFilter narrows ListProducts. Inactive products are hidden unless
// IncludeInactive is set (the admin catalog view wants them).
type ProductFilter struct {
	CategoryID      *int64
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// OrderStore is the order accessor: parameterized CRUD, no business policy.
// Lookups return (nil, nil) when the row is absent; callers decide whether
// absence is an error.
type OrderStore interface {
	// InsertOrder persists a new order and returns the stored record with
	// its assigned id. A duplicate reference code surfaces as a unique
	// violation on ConstraintOrderReference.
	InsertOrder(ctx context.Context, o order.Order) (*order.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*order.Order, error)
	// GetOrderByReference expects a normalized (uppercase) code.
	GetOrderByReference(ctx context.Context, code string) (*order.WithCustomer, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]order.WithCustomer, error)
	ListOrdersByCustomer(ctx context.Context, customerID int64) ([]order.Order, error)
	// UpdateOrderStatusIfPending is a conditional write: it transitions the
	// order only if it is still pending, and returns (nil, nil) when the
	// condition did not hold or the order does not exist. This is the single
	// authoritative enforcement point for the state machine under
	// concurrent requests.
	UpdateOrderStatusIfPending(ctx context.Context, id int64, status order.Status, now time.Time) (*order.Order, error)
	// OrderStats returns per-status counts plus completed revenue for
	// orders created at or after since.
	OrderStats(ctx context.Context, since time.Time) (order.Stats, error)
}

type ProductStore interface {
	ListProducts(ctx context.Context, f ProductFilter) ([]product.Product, error)
	GetProductByID(ctx context.Context, id int64) (*product.Product, error)
	ListProductsByCategorySlug(ctx context.Context, slug string, limit, offset int) ([]product.Product, error)
	CreateProduct(ctx context.Context, p product.Product) (*product.Product, error)
	UpdateProduct(ctx context.Context, p product.Product) (*product.Product, error)
	// DeleteProduct reports whether a row was actually removed.
	DeleteProduct(ctx context.Context, id int64) (bool, error)
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]category.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*category.Category, error)
	CreateCategory(ctx context.Context, c category.Category) (*category.Category, error)
	UpdateCategory(ctx context.Context, c category.Category) (*category.Category, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)
}

type CustomerStore interface {
	CreateCustomer(ctx context.Context, c customer.Customer) (*customer.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*customer.Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*customer.Customer, error)
	RecordCustomerLogin(ctx context.Context, id int64, at time.Time) error
	GetAdminByUsername(ctx context.Context, username string) (*customer.Admin, error)
	RecordAdminLogin(ctx context.Context, id int64, at time.Time) error
}
