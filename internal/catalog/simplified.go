// Package catalog holds the static product set served while the shop runs in
// simplified mode. With no database attached the storefront stays browsable:
// products come from this fixed list and category listings are empty.
package catalog

import (
	"strings"
	"time"

	"github.com/example/grocer-pickup/internal/domain/product"
)

// Filter mirrors the public catalog query options.
type Filter struct {
	CategoryID *int64
	Search     string
	Limit      int
	Offset     int
}

type record struct {
	id          int64
	name        string
	description string
	price       int64
	stock       int
	sku         string
}

var records = []record{
	{1, "Whole Milk 1L", "Fresh whole milk from local farms", 180, 40, "DAIRY-001"},
	{2, "Free-Range Eggs (12)", "Large free-range eggs", 420, 30, "DAIRY-002"},
	{3, "Cheddar Cheese 200g", "Mature cheddar block", 350, 25, "DAIRY-003"},
	{4, "Bananas 1kg", "Ripe Cavendish bananas", 150, 60, "PROD-001"},
	{5, "Tomatoes 500g", "Vine-ripened tomatoes", 220, 45, "PROD-002"},
	{6, "Baby Spinach 150g", "Washed and ready to eat", 260, 20, "PROD-003"},
	{7, "Chopped Tomatoes 400g", "Canned Italian tomatoes", 120, 80, "CAN-001"},
	{8, "Chickpeas 400g", "Canned chickpeas in water", 110, 70, "CAN-002"},
	{9, "Jasmine Rice 2kg", "Fragrant long-grain rice", 680, 35, "GRAIN-001"},
	{10, "Rolled Oats 1kg", "Whole-grain rolled oats", 320, 50, "GRAIN-002"},
	{11, "Orange Juice 1L", "Freshly squeezed, not from concentrate", 380, 30, "BEV-001"},
	{12, "Ground Coffee 250g", "Medium roast arabica", 750, 25, "BEV-002"},
	{13, "Sparkling Water 6x500ml", "Natural sparkling mineral water", 450, 40, "BEV-003"},
	{14, "Tortilla Chips 200g", "Lightly salted corn chips", 240, 55, "SNACK-001"},
	{15, "Dark Chocolate 100g", "70% cocoa", 280, 45, "SNACK-002"},
	{16, "Frozen Peas 750g", "Garden peas, frozen fresh", 290, 35, "FROZ-001"},
	{17, "Vanilla Ice Cream 500ml", "Made with real vanilla", 520, 20, "FROZ-002"},
	{18, "Dish Soap 500ml", "Lemon-scented washing-up liquid", 230, 60, "HOUSE-001"},
	{19, "Paper Towels (4 rolls)", "Double-ply kitchen towels", 410, 40, "HOUSE-002"},
	{20, "Laundry Detergent 1.5L", "Concentrated liquid detergent", 890, 25, "HOUSE-003"},
}

// baseTime anchors the synthetic timestamps. Entries are spaced one second
// apart so newest-first ordering matches the declared order.
var baseTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Products returns the fallback products matching f, newest first. A category
// filter always yields an empty result because the static set carries no
// category assignments.
func Products(f Filter) []product.Product {
	if f.CategoryID != nil {
		return []product.Product{}
	}

	result := []product.Product{}
	term := strings.ToLower(f.Search)
	for i, r := range records {
		if term != "" &&
			!strings.Contains(strings.ToLower(r.name), term) &&
			!strings.Contains(strings.ToLower(r.description), term) {
			continue
		}
		result = append(result, toProduct(r, i))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if f.Offset >= len(result) {
		return []product.Product{}
	}
	result = result[f.Offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// ProductByID returns the fallback product with the given id, or nil.
func ProductByID(id int64) *product.Product {
	for i, r := range records {
		if r.id == id {
			p := toProduct(r, i)
			return &p
		}
	}
	return nil
}

func toProduct(r record, index int) product.Product {
	ts := baseTime.Add(-time.Duration(index) * time.Second)
	return product.Product{
		ID:            r.id,
		Name:          r.name,
		Description:   r.description,
		Price:         r.price,
		StockQuantity: r.stock,
		SKU:           r.sku,
		IsActive:      true,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}
