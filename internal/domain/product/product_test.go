package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Validate(t *testing.T) {
	valid := Product{Name: "Jasmine Rice 5kg", Price: 68000}
	assert.NoError(t, valid.Validate())

	noName := Product{Name: "   ", Price: 1000}
	assert.ErrorIs(t, noName.Validate(), ErrInvalidName)

	freebie := Product{Name: "Rice", Price: 0}
	assert.ErrorIs(t, freebie.Validate(), ErrInvalidPrice)

	negative := Product{Name: "Rice", Price: -5}
	assert.ErrorIs(t, negative.Validate(), ErrInvalidPrice)
}
