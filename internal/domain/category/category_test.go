package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Validate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  error
	}{
		{"valid", Category{Name: "Rice & Grains", Slug: "grains"}, nil},
		{"valid with hyphen", Category{Name: "Canned Goods", Slug: "canned-goods"}, nil},
		{"missing name", Category{Name: "", Slug: "grains"}, ErrInvalidName},
		{"uppercase slug", Category{Name: "Dairy", Slug: "Dairy"}, ErrInvalidSlug},
		{"empty slug", Category{Name: "Dairy", Slug: ""}, ErrInvalidSlug},
		{"spaces in slug", Category{Name: "Dairy", Slug: "dairy products"}, ErrInvalidSlug},
		{"leading hyphen", Category{Name: "Dairy", Slug: "-dairy"}, ErrInvalidSlug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
