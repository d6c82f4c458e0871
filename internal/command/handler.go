package command

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/grocer-pickup/internal/auth"
	"github.com/example/grocer-pickup/internal/domain/category"
	"github.com/example/grocer-pickup/internal/domain/customer"
	"github.com/example/grocer-pickup/internal/domain/order"
	"github.com/example/grocer-pickup/internal/domain/product"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
)

var (
	// ErrOrderingDisabled is returned by Checkout while the shop runs in
	// simplified mode (browse-only, no ordering).
	ErrOrderingDisabled = errors.New("ordering is currently disabled")
	// ErrSimplifiedMode is returned by every other write while the shop runs
	// in simplified mode.
	ErrSimplifiedMode = errors.New("operation unavailable in simplified mode")
)

// maxReferenceAttempts bounds the pickup-code retry loop. With 32^8 possible
// codes a second collision in a row is already vanishingly unlikely.
const maxReferenceAttempts = 5

// EventPublisher pushes domain events to the order topic. Publishing is best
// effort; a broker outage must never fail a committed write.
type EventPublisher interface {
	Publish(ctx context.Context, key, eventType string, payload any) error
}

// Handler executes all state-changing operations. Reads live in the query
// package.
type Handler struct {
	orders     store.OrderStore
	products   store.ProductStore
	categories store.CategoryStore
	customers  store.CustomerStore
	publisher  EventPublisher
	simplified bool

	now func() time.Time
}

func NewHandler(
	orders store.OrderStore,
	products store.ProductStore,
	categories store.CategoryStore,
	customers store.CustomerStore,
	publisher EventPublisher,
	simplified bool,
) *Handler {
	return &Handler{
		orders:     orders,
		products:   products,
		categories: categories,
		customers:  customers,
		publisher:  publisher,
		simplified: simplified,
		now:        time.Now,
	}
}

// Checkout validates the cart, snapshots catalog data into immutable line
// items, and inserts a pending order under a fresh pickup code. Code
// uniqueness is delegated to the database constraint; on a collision the
// insert is retried with a new code.
func (h *Handler) Checkout(ctx context.Context, cmd Checkout) (*order.Receipt, error) {
	if h.simplified {
		return nil, ErrOrderingDisabled
	}
	if cmd.CustomerID <= 0 {
		return nil, customer.ErrUnauthorized
	}
	if len(cmd.Items) == 0 {
		return nil, order.ErrEmptyCart
	}

	items := make([]order.LineItem, 0, len(cmd.Items))
	for _, it := range cmd.Items {
		if it.Quantity < 1 {
			return nil, order.ErrInvalidQuantity
		}
		p, err := h.products.GetProductByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load product %d: %w", it.ProductID, err)
		}
		if p == nil || !p.IsActive {
			return nil, product.ErrProductNotFound
		}
		items = append(items, order.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
	}

	now := h.now()
	var stored *order.Order
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		code, err := order.NewReferenceCode()
		if err != nil {
			return nil, fmt.Errorf("generate reference code: %w", err)
		}

		stored, err = h.orders.InsertOrder(ctx, order.Order{
			ReferenceCode: code,
			CustomerID:    cmd.CustomerID,
			Items:         items,
			TotalPrice:    order.Total(items),
			Status:        order.StatusPending,
			CreatedAt:     now,
		})
		if err == nil {
			break
		}
		if store.IsUniqueViolation(err, store.ConstraintOrderReference) {
			log.Printf("[API] reference code collision on %s, retrying", code)
			stored = nil
			continue
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}
	if stored == nil {
		return nil, order.ErrReferenceCodeExhausted
	}

	h.publish(ctx, stored.ReferenceCode, order.EventOrderPlaced, order.Placed{
		OrderID:       stored.ID,
		ReferenceCode: stored.ReferenceCode,
		CustomerID:    stored.CustomerID,
		Items:         stored.Items,
		TotalPrice:    stored.TotalPrice,
	})

	return &order.Receipt{
		ID:            stored.ID,
		ReferenceCode: stored.ReferenceCode,
		TotalPrice:    stored.TotalPrice,
		Items:         stored.Items,
	}, nil
}

// CompleteOrder marks a pending order as picked up.
func (h *Handler) CompleteOrder(ctx context.Context, cmd CompleteOrder) (*order.Order, error) {
	return h.transition(ctx, cmd.OrderID, order.StatusCompleted)
}

// CancelOrder voids a pending order.
func (h *Handler) CancelOrder(ctx context.Context, cmd CancelOrder) (*order.Order, error) {
	return h.transition(ctx, cmd.OrderID, order.StatusCancelled)
}

// TransitionOrderByReference resolves a scanned pickup code and applies the
// requested terminal status. This is the back-office scan flow.
func (h *Handler) TransitionOrderByReference(ctx context.Context, code string, target order.Status) (*order.WithCustomer, error) {
	if h.simplified {
		return nil, ErrSimplifiedMode
	}
	if !order.StatusPending.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %q", order.ErrInvalidStatus, target)
	}

	found, err := h.orders.GetOrderByReference(ctx, order.NormalizeReferenceCode(code))
	if err != nil {
		return nil, fmt.Errorf("lookup order by reference: %w", err)
	}
	if found == nil {
		return nil, order.ErrOrderNotFound
	}

	updated, err := h.transition(ctx, found.ID, target)
	if err != nil {
		return nil, err
	}
	return &order.WithCustomer{Order: *updated, Customer: found.Customer}, nil
}

// transition applies a terminal status through the store's conditional write.
// The write succeeds only while the order is still pending, which is the
// single enforcement point for the state machine under concurrent scans.
func (h *Handler) transition(ctx context.Context, id int64, target order.Status) (*order.Order, error) {
	if h.simplified {
		return nil, ErrSimplifiedMode
	}
	if !order.StatusPending.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %q", order.ErrInvalidStatus, target)
	}

	updated, err := h.orders.UpdateOrderStatusIfPending(ctx, id, target, h.now())
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if updated == nil {
		// The conditional write did not apply. Re-read to tell a missing
		// order apart from one that already left pending.
		existing, err := h.orders.GetOrderByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("re-read order %d: %w", id, err)
		}
		if existing == nil {
			return nil, order.ErrOrderNotFound
		}
		return nil, order.ErrInvalidTransition
	}

	eventType := order.EventOrderCompleted
	if target == order.StatusCancelled {
		eventType = order.EventOrderCancelled
	}
	h.publish(ctx, updated.ReferenceCode, eventType, order.StatusChanged{
		OrderID:       updated.ID,
		ReferenceCode: updated.ReferenceCode,
		CustomerID:    updated.CustomerID,
		Status:        updated.Status,
	})

	return updated, nil
}

// RegisterCustomer creates a storefront account with a bcrypt password hash.
func (h *Handler) RegisterCustomer(ctx context.Context, cmd RegisterCustomer) (*customer.Customer, error) {
	if h.simplified {
		return nil, ErrSimplifiedMode
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	created, err := h.customers.CreateCustomer(ctx, customer.Customer{
		Email:        cmd.Email,
		Name:         cmd.Name,
		PasswordHash: hash,
		CreatedAt:    h.now(),
	})
	if err != nil {
		if store.IsUniqueViolation(err, store.ConstraintCustomerEmail) {
			return nil, customer.ErrEmailTaken
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return created, nil
}

// CreateProduct adds a catalog entry.
func (h *Handler) CreateProduct(ctx context.Context, cmd CreateProduct) (*product.Product, error) {
	if h.simplified {
		return nil, ErrSimplifiedMode
	}

	active := true
	if cmd.IsActive != nil {
		active = *cmd.IsActive
	}
	p := product.Product{
		Name:          cmd.Name,
		Description:   cmd.Description,
		CategoryID:    cmd.CategoryID,
		Price:         cmd.Price,
		StockQuantity: cmd.StockQuantity,
		ImageURL:      cmd.ImageURL,
		SKU:           cmd.SKU,
		IsActive:      active,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := h.products.CreateProduct(ctx, p)
	if err != nil {
		if store.IsUniqueViolation(err, store.ConstraintProductSKU) {
			return nil, product.ErrDuplicateSKU
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (h *Handler) UpdateProduct(ctx context.Context, cmd UpdateProduct) (*product.Product, error) {
	if h.simplified {
		return nil, ErrSimplifiedMode
	}

	existing, err := h.products.GetProductByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", cmd.ProductID, err)
	}
	if existing == nil {
		return nil, product.ErrProductNotFound
	}

	active := existing.IsActive
	if cmd.IsActive != nil {
		active = *cmd.IsActive
	}
	p := product.Product{
		ID:            cmd.ProductID,
		Name:          cmd.Name,
		Description:   cmd.Description,
		CategoryID:    cmd.CategoryID,
		Price:         cmd.Price,
		StockQuantity: cmd.StockQuantity,
		ImageURL:      cmd.ImageURL,
		SKU:           cmd.SKU,
		IsActive:      active,
		CreatedAt:     existing.CreatedAt,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	updated, err := h.products.UpdateProduct(ctx, p)
	if err != nil {
		if store.IsUniqueViolation(err, store.ConstraintProductSKU) {
			return nil, product.ErrDuplicateSKU
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	if updated == nil {
		return nil, product.ErrProductNotFound
	}
	return updated, nil
}

func (h *Handler) DeleteProduct(ctx context.Context, cmd DeleteProduct) error {
	if h.simplified {
		return ErrSimplifiedMode
	}

	deleted, err := h.products.DeleteProduct(ctx, cmd.ProductID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return product.ErrProductNotFound
	}
	return nil
}

func (h *Handler) CreateCategory(ctx context.Context, cmd CreateCategory) (*category.Category, error) {
	if h.simplified {
		return nil, ErrSimplifiedMode
	}

	c := category.Category{
		Name:         cmd.Name,
		Slug:         cmd.Slug,
		ImageURL:     cmd.ImageURL,
		DisplayOrder: cmd.DisplayOrder,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	created, err := h.categories.CreateCategory(ctx, c)
	if err != nil {
		if store.IsUniqueViolation(err, store.ConstraintCategorySlug) {
			return nil, category.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (h *Handler) UpdateCategory(ctx context.Context, cmd UpdateCategory) (*category.Category, error) {
	if h.simplified {
		return nil, ErrSimplifiedMode
	}

	c := category.Category{
		ID:           cmd.CategoryID,
		Name:         cmd.Name,
		Slug:         cmd.Slug,
		ImageURL:     cmd.ImageURL,
		DisplayOrder: cmd.DisplayOrder,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	updated, err := h.categories.UpdateCategory(ctx, c)
	if err != nil {
		if store.IsUniqueViolation(err, store.ConstraintCategorySlug) {
			return nil, category.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	if updated == nil {
		return nil, category.ErrCategoryNotFound
	}
	return updated, nil
}

func (h *Handler) DeleteCategory(ctx context.Context, cmd DeleteCategory) error {
	if h.simplified {
		return ErrSimplifiedMode
	}

	deleted, err := h.categories.DeleteCategory(ctx, cmd.CategoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return category.ErrCategoryNotFound
	}
	return nil
}

// publish sends an event and logs failures instead of propagating them. The
// write already committed; consumers catch up when the broker recovers.
func (h *Handler) publish(ctx context.Context, key, eventType string, payload any) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, key, eventType, payload); err != nil {
		log.Printf("[API] failed to publish %s for %s: %v", eventType, key, err)
	}
}
