package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lib/pq"

	"github.com/example/grocer-pickup/internal/domain/category"
	"github.com/example/grocer-pickup/internal/domain/product"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
)

// ProductStoreMock is an in-memory ProductStore.
type ProductStoreMock struct {
	mu         sync.Mutex
	nextID     int64
	products   map[int64]*product.Product
	categories *CategoryStoreMock
}

// NewProductStoreMock wires the product mock to a category mock so that
// slug-based listing works. Pass nil if the test never lists by slug.
func NewProductStoreMock(categories *CategoryStoreMock) *ProductStoreMock {
	return &ProductStoreMock{
		products:   map[int64]*product.Product{},
		categories: categories,
	}
}

func (m *ProductStoreMock) ListProducts(ctx context.Context, f store.ProductFilter) ([]product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []product.Product{}
	for _, p := range m.products {
		if !f.IncludeInactive && !p.IsActive {
			continue
		}
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), q) &&
				!strings.Contains(strings.ToLower(p.Description), q) {
				continue
			}
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return page(result, f.Limit, f.Offset), nil
}

func (m *ProductStoreMock) GetProductByID(ctx context.Context, id int64) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *ProductStoreMock) ListProductsByCategorySlug(ctx context.Context, slug string, limit, offset int) ([]product.Product, error) {
	if m.categories == nil {
		return []product.Product{}, nil
	}
	cat, err := m.categories.GetCategoryBySlug(ctx, slug)
	if err != nil || cat == nil {
		return []product.Product{}, err
	}
	return m.ListProducts(ctx, store.ProductFilter{CategoryID: &cat.ID, Limit: limit, Offset: offset})
}

func (m *ProductStoreMock) CreateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.SKU != "" {
		for _, existing := range m.products {
			if existing.SKU == p.SKU {
				return nil, &pq.Error{Code: "23505", Constraint: store.ConstraintProductSKU}
			}
		}
	}

	m.nextID++
	p.ID = m.nextID
	m.products[p.ID] = &p
	cp := p
	return &cp, nil
}

func (m *ProductStoreMock) UpdateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[p.ID]; !ok {
		return nil, nil
	}
	m.products[p.ID] = &p
	cp := p
	return &cp, nil
}

func (m *ProductStoreMock) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return false, nil
	}
	delete(m.products, id)
	return true, nil
}

// CategoryStoreMock is an in-memory CategoryStore.
type CategoryStoreMock struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]*category.Category
}

func NewCategoryStoreMock() *CategoryStoreMock {
	return &CategoryStoreMock{categories: map[int64]*category.Category{}}
}

func (m *CategoryStoreMock) ListCategories(ctx context.Context) ([]category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []category.Category{}
	for _, c := range m.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *CategoryStoreMock) GetCategoryBySlug(ctx context.Context, slug string) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *CategoryStoreMock) CreateCategory(ctx context.Context, c category.Category) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.Slug == c.Slug {
			return nil, &pq.Error{Code: "23505", Constraint: store.ConstraintCategorySlug}
		}
	}

	m.nextID++
	c.ID = m.nextID
	m.categories[c.ID] = &c
	cp := c
	return &cp, nil
}

func (m *CategoryStoreMock) UpdateCategory(ctx context.Context, c category.Category) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[c.ID]; !ok {
		return nil, nil
	}
	for _, existing := range m.categories {
		if existing.ID != c.ID && existing.Slug == c.Slug {
			return nil, &pq.Error{Code: "23505", Constraint: store.ConstraintCategorySlug}
		}
	}
	m.categories[c.ID] = &c
	cp := c
	return &cp, nil
}

func (m *CategoryStoreMock) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return false, nil
	}
	delete(m.categories, id)
	return true, nil
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 50
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
