package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/grocer-pickup/internal/domain/category"
	"github.com/example/grocer-pickup/internal/domain/customer"
	"github.com/example/grocer-pickup/internal/domain/order"
	"github.com/example/grocer-pickup/internal/domain/product"
	"github.com/example/grocer-pickup/internal/infrastructure/store/mocks"
)

type publishedEvent struct {
	Key       string
	EventType string
	Payload   any
}

type capturingPublisher struct {
	events []publishedEvent
	err    error
}

func (p *capturingPublisher) Publish(ctx context.Context, key, eventType string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Key: key, EventType: eventType, Payload: payload})
	return nil
}

type fixture struct {
	handler    *Handler
	orders     *mocks.OrderStoreMock
	products   *mocks.ProductStoreMock
	categories *mocks.CategoryStoreMock
	customers  *mocks.CustomerStoreMock
	publisher  *capturingPublisher
}

func newFixture(t *testing.T, simplified bool) *fixture {
	t.Helper()

	categories := mocks.NewCategoryStoreMock()
	f := &fixture{
		orders:     mocks.NewOrderStoreMock(),
		products:   mocks.NewProductStoreMock(categories),
		categories: categories,
		customers:  mocks.NewCustomerStoreMock(),
		publisher:  &capturingPublisher{},
	}
	f.handler = NewHandler(f.orders, f.products, f.categories, f.customers, f.publisher, simplified)
	return f
}

func (f *fixture) seedProduct(t *testing.T, name string, price int64, active bool) *product.Product {
	t.Helper()

	p, err := f.products.CreateProduct(context.Background(), product.Product{
		Name:     name,
		Price:    price,
		IsActive: active,
	})
	require.NoError(t, err)
	return p
}

func TestCheckout(t *testing.T) {
	f := newFixture(t, false)
	apples := f.seedProduct(t, "Apples", 300, true)
	milk := f.seedProduct(t, "Milk", 450, true)

	receipt, err := f.handler.Checkout(context.Background(), Checkout{
		CustomerID: 7,
		Items: []CartItem{
			{ProductID: apples.ID, Quantity: 3},
			{ProductID: milk.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Len(t, receipt.ReferenceCode, order.ReferenceCodeLength)
	assert.Equal(t, int64(3*300+450), receipt.TotalPrice)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "Apples", receipt.Items[0].Name)
	assert.Equal(t, int64(300), receipt.Items[0].UnitPrice)

	stored, err := f.orders.GetOrderByID(context.Background(), receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, order.StatusPending, stored.Status)
	assert.Equal(t, int64(7), stored.CustomerID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, order.EventOrderPlaced, f.publisher.events[0].EventType)
	assert.Equal(t, receipt.ReferenceCode, f.publisher.events[0].Key)
}

func TestCheckoutRejectsBadCarts(t *testing.T) {
	f := newFixture(t, false)
	apples := f.seedProduct(t, "Apples", 300, true)
	discontinued := f.seedProduct(t, "Old Stock", 100, false)

	_, err := f.handler.Checkout(context.Background(), Checkout{
		Items: []CartItem{{ProductID: apples.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, customer.ErrUnauthorized)

	_, err = f.handler.Checkout(context.Background(), Checkout{CustomerID: 1})
	assert.ErrorIs(t, err, order.ErrEmptyCart)

	_, err = f.handler.Checkout(context.Background(), Checkout{
		CustomerID: 1,
		Items:      []CartItem{{ProductID: apples.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)

	_, err = f.handler.Checkout(context.Background(), Checkout{
		CustomerID: 1,
		Items:      []CartItem{{ProductID: 9999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	_, err = f.handler.Checkout(context.Background(), Checkout{
		CustomerID: 1,
		Items:      []CartItem{{ProductID: discontinued.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	assert.Empty(t, f.publisher.events)
}

func TestCheckoutRetriesOnReferenceCollision(t *testing.T) {
	f := newFixture(t, false)
	apples := f.seedProduct(t, "Apples", 300, true)

	f.orders.InsertErrs = []error{mocks.ReferenceCollisionErr(), nil}

	receipt, err := f.handler.Checkout(context.Background(), Checkout{
		CustomerID: 1,
		Items:      []CartItem{{ProductID: apples.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Len(t, receipt.ReferenceCode, order.ReferenceCodeLength)
}

func TestCheckoutGivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newFixture(t, false)
	apples := f.seedProduct(t, "Apples", 300, true)

	for i := 0; i < maxReferenceAttempts; i++ {
		f.orders.InsertErrs = append(f.orders.InsertErrs, mocks.ReferenceCollisionErr())
	}

	_, err := f.handler.Checkout(context.Background(), Checkout{
		CustomerID: 1,
		Items:      []CartItem{{ProductID: apples.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, order.ErrReferenceCodeExhausted)
	assert.Empty(t, f.publisher.events)
}

func TestCheckoutAbortsOnStoreError(t *testing.T) {
	f := newFixture(t, false)
	apples := f.seedProduct(t, "Apples", 300, true)

	boom := errors.New("connection reset")
	f.orders.InsertErrs = []error{boom}

	_, err := f.handler.Checkout(context.Background(), Checkout{
		CustomerID: 1,
		Items:      []CartItem{{ProductID: apples.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, boom)
}

func placeOrder(t *testing.T, f *fixture) *order.Receipt {
	t.Helper()

	apples := f.seedProduct(t, "Apples", 300, true)
	receipt, err := f.handler.Checkout(context.Background(), Checkout{
		CustomerID: 1,
		Items:      []CartItem{{ProductID: apples.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	return receipt
}

func TestCompleteOrder(t *testing.T) {
	f := newFixture(t, false)
	receipt := placeOrder(t, f)

	updated, err := f.handler.CompleteOrder(context.Background(), CompleteOrder{OrderID: receipt.ID})
	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, order.EventOrderCompleted, f.publisher.events[1].EventType)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(t, false)
	receipt := placeOrder(t, f)

	updated, err := f.handler.CancelOrder(context.Background(), CancelOrder{OrderID: receipt.ID})
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, updated.Status)
	assert.Nil(t, updated.CompletedAt)

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, order.EventOrderCancelled, f.publisher.events[1].EventType)
}

func TestTransitionIsOneShot(t *testing.T) {
	f := newFixture(t, false)
	receipt := placeOrder(t, f)

	_, err := f.handler.CompleteOrder(context.Background(), CompleteOrder{OrderID: receipt.ID})
	require.NoError(t, err)

	_, err = f.handler.CancelOrder(context.Background(), CancelOrder{OrderID: receipt.ID})
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	_, err = f.handler.CompleteOrder(context.Background(), CompleteOrder{OrderID: receipt.ID})
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	// Only the first transition published an event.
	assert.Len(t, f.publisher.events, 2)
}

func TestTransitionUnknownOrder(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.handler.CompleteOrder(context.Background(), CompleteOrder{OrderID: 42})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestTransitionOrderByReference(t *testing.T) {
	f := newFixture(t, false)
	f.orders.Customers[1] = order.CustomerSummary{ID: 1, Name: "Dana", Email: "dana@example.com"}
	receipt := placeOrder(t, f)

	// Codes arriving from a QR scan may carry whitespace.
	updated, err := f.handler.TransitionOrderByReference(
		context.Background(),
		"  "+receipt.ReferenceCode+"  ",
		order.StatusCompleted,
	)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, updated.Status)
	assert.Equal(t, "Dana", updated.Customer.Name)

	_, err = f.handler.TransitionOrderByReference(context.Background(), "ZZZZZZZZ", order.StatusCompleted)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	_, err = f.handler.TransitionOrderByReference(context.Background(), receipt.ReferenceCode, order.StatusPending)
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestSimplifiedModeBlocksWrites(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.handler.Checkout(context.Background(), Checkout{
		CustomerID: 1,
		Items:      []CartItem{{ProductID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrOrderingDisabled)

	_, err = f.handler.CompleteOrder(context.Background(), CompleteOrder{OrderID: 1})
	assert.ErrorIs(t, err, ErrSimplifiedMode)

	_, err = f.handler.RegisterCustomer(context.Background(), RegisterCustomer{
		Name: "Dana", Email: "dana@example.com", Password: "longenough",
	})
	assert.ErrorIs(t, err, ErrSimplifiedMode)

	_, err = f.handler.CreateProduct(context.Background(), CreateProduct{Name: "Apples", Price: 300})
	assert.ErrorIs(t, err, ErrSimplifiedMode)

	err = f.handler.DeleteCategory(context.Background(), DeleteCategory{CategoryID: 1})
	assert.ErrorIs(t, err, ErrSimplifiedMode)
}

func TestBrokerOutageDoesNotFailCheckout(t *testing.T) {
	f := newFixture(t, false)
	f.publisher.err = errors.New("broker unavailable")
	apples := f.seedProduct(t, "Apples", 300, true)

	receipt, err := f.handler.Checkout(context.Background(), Checkout{
		CustomerID: 1,
		Items:      []CartItem{{ProductID: apples.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ReferenceCode)
}

func TestRegisterCustomer(t *testing.T) {
	f := newFixture(t, false)

	created, err := f.handler.RegisterCustomer(context.Background(), RegisterCustomer{
		Name: "Dana", Email: "dana@example.com", Password: "longenough",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "longenough", created.PasswordHash)

	_, err = f.handler.RegisterCustomer(context.Background(), RegisterCustomer{
		Name: "Other", Email: "dana@example.com", Password: "longenough",
	})
	assert.ErrorIs(t, err, customer.ErrEmailTaken)
}

func TestProductCRUD(t *testing.T) {
	f := newFixture(t, false)

	created, err := f.handler.CreateProduct(context.Background(), CreateProduct{
		Name: "Apples", Price: 300, SKU: "SKU-1",
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = f.handler.CreateProduct(context.Background(), CreateProduct{
		Name: "Other Apples", Price: 200, SKU: "SKU-1",
	})
	assert.ErrorIs(t, err, product.ErrDuplicateSKU)

	_, err = f.handler.CreateProduct(context.Background(), CreateProduct{Name: "  ", Price: 300})
	assert.ErrorIs(t, err, product.ErrInvalidName)

	_, err = f.handler.CreateProduct(context.Background(), CreateProduct{Name: "Free", Price: 0})
	assert.ErrorIs(t, err, product.ErrInvalidPrice)

	inactive := false
	updated, err := f.handler.UpdateProduct(context.Background(), UpdateProduct{
		ProductID: created.ID, Name: "Green Apples", Price: 350, SKU: "SKU-1", IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Green Apples", updated.Name)
	assert.False(t, updated.IsActive)

	_, err = f.handler.UpdateProduct(context.Background(), UpdateProduct{
		ProductID: 9999, Name: "Ghost", Price: 100,
	})
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	require.NoError(t, f.handler.DeleteProduct(context.Background(), DeleteProduct{ProductID: created.ID}))
	assert.ErrorIs(t,
		f.handler.DeleteProduct(context.Background(), DeleteProduct{ProductID: created.ID}),
		product.ErrProductNotFound,
	)
}

func TestCategoryCRUD(t *testing.T) {
	f := newFixture(t, false)

	created, err := f.handler.CreateCategory(context.Background(), CreateCategory{
		Name: "Fresh Produce", Slug: "fresh-produce", DisplayOrder: 1,
	})
	require.NoError(t, err)

	_, err = f.handler.CreateCategory(context.Background(), CreateCategory{
		Name: "Dupe", Slug: "fresh-produce",
	})
	assert.ErrorIs(t, err, category.ErrDuplicateSlug)

	_, err = f.handler.CreateCategory(context.Background(), CreateCategory{
		Name: "Bad Slug", Slug: "Not A Slug!",
	})
	assert.ErrorIs(t, err, category.ErrInvalidSlug)

	updated, err := f.handler.UpdateCategory(context.Background(), UpdateCategory{
		CategoryID: created.ID, Name: "Produce", Slug: "produce", DisplayOrder: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "produce", updated.Slug)

	_, err = f.handler.UpdateCategory(context.Background(), UpdateCategory{
		CategoryID: 9999, Name: "Ghost", Slug: "ghost",
	})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	require.NoError(t, f.handler.DeleteCategory(context.Background(), DeleteCategory{CategoryID: created.ID}))
	assert.ErrorIs(t,
		f.handler.DeleteCategory(context.Background(), DeleteCategory{CategoryID: created.ID}),
		category.ErrCategoryNotFound,
	)
}

func TestTransitionTimestamps(t *testing.T) {
	f := newFixture(t, false)
	receipt := placeOrder(t, f)

	frozen := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	f.handler.now = func() time.Time { return frozen }

	updated, err := f.handler.CompleteOrder(context.Background(), CompleteOrder{OrderID: receipt.ID})
	require.NoError(t, err)
	assert.Equal(t, frozen, updated.UpdatedAt)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, frozen, *updated.CompletedAt)
}
