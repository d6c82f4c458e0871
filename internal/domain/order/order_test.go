package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusCancelled, StatusPending, false},
		{Status("unknown"), StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "completed", "cancelled"} {
		s, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), s)
	}

	for _, invalid := range []string{"", "PENDING", "done", "shipped"} {
		_, err := ParseStatus(invalid)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}
}

func TestTotal(t *testing.T) {
	items := []LineItem{
		{ProductID: 1, Name: "Rice", Quantity: 2, UnitPrice: 25000},
		{ProductID: 2, Name: "Eggs", Quantity: 3, UnitPrice: 1500},
	}
	assert.Equal(t, int64(54500), Total(items))
	assert.Equal(t, int64(0), Total(nil))
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	at := time.Date(2024, 3, 15, 18, 42, 13, 999, loc)

	midnight := StartOfDay(at)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), midnight)
	assert.Equal(t, loc, midnight.Location())
}
