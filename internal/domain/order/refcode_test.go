package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferenceCode_Shape(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := NewReferenceCode()
		require.NoError(t, err)
		require.Len(t, code, ReferenceCodeLength)

		for _, c := range code {
			assert.Contains(t, referenceAlphabet, string(c))
		}
		// The ambiguous characters must never appear.
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}

func TestNewReferenceCode_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := NewReferenceCode()
		require.NoError(t, err)
		seen[code] = true
	}
	// 100 draws from a 32^8 space colliding down to one value would mean the
	// entropy source is broken.
	assert.Greater(t, len(seen), 1)
}

func TestReferenceAlphabet(t *testing.T) {
	assert.Len(t, referenceAlphabet, 32)
	assert.Equal(t, "ABCDEFGHJKLMNPQRSTUVWXYZ23456789", referenceAlphabet)
}

func TestNormalizeReferenceCode(t *testing.T) {
	assert.Equal(t, "AB2CD3EF", NormalizeReferenceCode("ab2cd3ef"))
	assert.Equal(t, "AB2CD3EF", NormalizeReferenceCode("  Ab2Cd3eF "))
	assert.Equal(t, strings.ToUpper("wxyz2345"), NormalizeReferenceCode("wxyz2345"))
}
