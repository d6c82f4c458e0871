package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/example/grocer-pickup/internal/domain/customer"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
)

// CustomerStoreMock is an in-memory CustomerStore covering both storefront
// accounts and back-office admins.
type CustomerStoreMock struct {
	mu        sync.Mutex
	nextID    int64
	customers map[int64]*customer.Customer
	admins    map[int64]*customer.Admin
}

func NewCustomerStoreMock() *CustomerStoreMock {
	return &CustomerStoreMock{
		customers: map[int64]*customer.Customer{},
		admins:    map[int64]*customer.Admin{},
	}
}

// SeedAdmin registers a back-office account directly, the way a migration
// would.
func (m *CustomerStoreMock) SeedAdmin(a customer.Admin) *customer.Admin {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	a.ID = m.nextID
	m.admins[a.ID] = &a
	cp := a
	return &cp
}

func (m *CustomerStoreMock) CreateCustomer(ctx context.Context, c customer.Customer) (*customer.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.customers {
		if existing.Email == c.Email {
			return nil, &pq.Error{Code: "23505", Constraint: store.ConstraintCustomerEmail}
		}
	}

	m.nextID++
	c.ID = m.nextID
	m.customers[c.ID] = &c
	cp := c
	return &cp, nil
}

func (m *CustomerStoreMock) GetCustomerByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *CustomerStoreMock) GetCustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *CustomerStoreMock) RecordCustomerLogin(ctx context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.customers[id]; ok {
		t := at
		c.LastLogin = &t
	}
	return nil
}

func (m *CustomerStoreMock) GetAdminByUsername(ctx context.Context, username string) (*customer.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *CustomerStoreMock) RecordAdminLogin(ctx context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.admins[id]; ok {
		t := at
		a.LastLogin = &t
	}
	return nil
}
