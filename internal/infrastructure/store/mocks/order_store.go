package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/example/grocer-pickup/internal/domain/order"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
)

// OrderStoreMock is an in-memory OrderStore. It enforces reference-code
// uniqueness the same way Postgres does, by returning a *pq.Error with code
// 23505, so checkout's retry loop can be exercised without a database.
type OrderStoreMock struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*order.Order

	// Customers maps customer ids to the summary joined into reads.
	Customers map[int64]order.CustomerSummary

	// InsertErrs is a queue of errors returned by successive InsertOrder
	// calls before the insert is attempted. A nil entry lets the call through.
	InsertErrs []error
}

func NewOrderStoreMock() *OrderStoreMock {
	return &OrderStoreMock{
		orders:    map[int64]*order.Order{},
		Customers: map[int64]order.CustomerSummary{},
	}
}

// ReferenceCollisionErr is what Postgres raises on a duplicate pickup code.
func ReferenceCollisionErr() error {
	return &pq.Error{Code: "23505", Constraint: store.ConstraintOrderReference}
}

func (m *OrderStoreMock) InsertOrder(ctx context.Context, o order.Order) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.InsertErrs) > 0 {
		err := m.InsertErrs[0]
		m.InsertErrs = m.InsertErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	for _, existing := range m.orders {
		if existing.ReferenceCode == o.ReferenceCode {
			return nil, ReferenceCollisionErr()
		}
	}

	m.nextID++
	o.ID = m.nextID
	o.UpdatedAt = o.CreatedAt
	m.orders[o.ID] = &o

	stored := o
	return &stored, nil
}

func (m *OrderStoreMock) GetOrderByID(ctx context.Context, id int64) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *OrderStoreMock) GetOrderByReference(ctx context.Context, code string) (*order.WithCustomer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.ReferenceCode == code {
			return &order.WithCustomer{Order: *o, Customer: m.Customers[o.CustomerID]}, nil
		}
	}
	return nil, nil
}

func (m *OrderStoreMock) ListOrders(ctx context.Context, f store.OrderFilter) ([]order.WithCustomer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := []order.WithCustomer{}
	for _, o := range m.orders {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		all = append(all, order.WithCustomer{Order: *o, Customer: m.Customers[o.CustomerID]})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if f.Offset >= len(all) {
		return []order.WithCustomer{}, nil
	}
	all = all[f.Offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *OrderStoreMock) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []order.Order{}
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *OrderStoreMock) UpdateOrderStatusIfPending(ctx context.Context, id int64, status order.Status, now time.Time) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok || o.Status != order.StatusPending {
		return nil, nil
	}

	o.Status = status
	o.UpdatedAt = now
	if status == order.StatusCompleted {
		at := now
		o.CompletedAt = &at
	}
	cp := *o
	return &cp, nil
}

func (m *OrderStoreMock) OrderStats(ctx context.Context, since time.Time) (order.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var stats order.Stats
	for _, o := range m.orders {
		switch o.Status {
		case order.StatusPending:
			stats.Pending++
		case order.StatusCompleted:
			stats.Completed++
			if !o.CreatedAt.Before(since) {
				stats.TodayRevenue += o.TotalPrice
			}
		case order.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}
