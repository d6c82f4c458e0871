package query

import (
	"context"
	"fmt"
	"time"

	"github.com/example/grocer-pickup/internal/catalog"
	"github.com/example/grocer-pickup/internal/domain/category"
	"github.com/example/grocer-pickup/internal/domain/customer"
	"github.com/example/grocer-pickup/internal/domain/order"
	"github.com/example/grocer-pickup/internal/domain/product"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
)

// Handler serves all reads. In simplified mode the catalog falls back to the
// static product set, category listings are empty, and order reads behave as
// if no orders exist.
type Handler struct {
	orders     store.OrderStore
	products   store.ProductStore
	categories store.CategoryStore
	customers  store.CustomerStore
	simplified bool

	now func() time.Time
}

func NewHandler(
	orders store.OrderStore,
	products store.ProductStore,
	categories store.CategoryStore,
	customers store.CustomerStore,
	simplified bool,
) *Handler {
	return &Handler{
		orders:     orders,
		products:   products,
		categories: categories,
		customers:  customers,
		simplified: simplified,
		now:        time.Now,
	}
}

func (h *Handler) ListProducts(ctx context.Context, f store.ProductFilter) ([]product.Product, error) {
	if h.simplified {
		return catalog.Products(catalog.Filter{
			CategoryID: f.CategoryID,
			Search:     f.Search,
			Limit:      f.Limit,
			Offset:     f.Offset,
		}), nil
	}
	return h.products.ListProducts(ctx, f)
}

func (h *Handler) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	if h.simplified {
		if p := catalog.ProductByID(id); p != nil {
			return p, nil
		}
		return nil, product.ErrProductNotFound
	}

	p, err := h.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (h *Handler) ListCategories(ctx context.Context) ([]category.Category, error) {
	if h.simplified {
		return []category.Category{}, nil
	}
	return h.categories.ListCategories(ctx)
}

func (h *Handler) ListProductsByCategorySlug(ctx context.Context, slug string, limit, offset int) ([]product.Product, error) {
	if h.simplified {
		return []product.Product{}, nil
	}
	return h.products.ListProductsByCategorySlug(ctx, slug, limit, offset)
}

// ListOrdersForCustomer returns the customer's own order history, newest
// first.
func (h *Handler) ListOrdersForCustomer(ctx context.Context, customerID int64) ([]order.Order, error) {
	if h.simplified {
		return []order.Order{}, nil
	}
	return h.orders.ListOrdersByCustomer(ctx, customerID)
}

// GetOrderByReference resolves a pickup code for the back-office scan view.
func (h *Handler) GetOrderByReference(ctx context.Context, code string) (*order.WithCustomer, error) {
	if h.simplified {
		return nil, order.ErrOrderNotFound
	}

	found, err := h.orders.GetOrderByReference(ctx, order.NormalizeReferenceCode(code))
	if err != nil {
		return nil, fmt.Errorf("lookup order by reference: %w", err)
	}
	if found == nil {
		return nil, order.ErrOrderNotFound
	}
	return found, nil
}

// ListOrders is the admin order board.
func (h *Handler) ListOrders(ctx context.Context, f store.OrderFilter) ([]order.WithCustomer, error) {
	if h.simplified {
		return []order.WithCustomer{}, nil
	}
	return h.orders.ListOrders(ctx, f)
}

// OrderStats aggregates the dashboard counters. Today's revenue starts at
// local midnight of the server clock.
func (h *Handler) OrderStats(ctx context.Context) (order.Stats, error) {
	if h.simplified {
		return order.Stats{}, nil
	}
	return h.orders.OrderStats(ctx, order.StartOfDay(h.now()))
}

func (h *Handler) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	if h.simplified {
		return nil, customer.ErrCustomerNotFound
	}

	c, err := h.customers.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	if c == nil {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}
