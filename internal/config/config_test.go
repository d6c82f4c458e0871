package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplifiedEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"Yes", true},
		{"on", true},
		{" on ", true},
		{"", false},
		{"0", false},
		{"false", false},
		{"off", false},
		{"enabled", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, simplifiedEnabled(tt.value))
		})
	}
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitCSV("a:9092, b:9092,"))
	assert.Empty(t, splitCSV(" , "))
}
