package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistory(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		expected int
	}{
		{"default capacity", 0, DefaultHistorySize},
		{"negative capacity", -1, DefaultHistorySize},
		{"custom capacity", 100, 100},
		{"small capacity", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.capacity)
			require.NotNil(t, h)
			assert.Len(t, h.data, tt.expected)
			assert.Empty(t, h.Snapshot())
		})
	}
}

func TestHistory_AppendBelowCapacity(t *testing.T) {
	h := NewHistory(5)

	h.Append(1)
	h.Append(2)
	h.Append(3)

	assert.Equal(t, []float64{1, 2, 3}, h.Snapshot())
}

func TestHistory_EvictsOldestAtCapacity(t *testing.T) {
	h := NewHistory(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		h.Append(v)
	}

	assert.Equal(t, []float64{3, 4, 5}, h.Snapshot())
}

func TestHistory_LengthNeverExceedsCapacity(t *testing.T) {
	h := NewHistory(DefaultHistorySize)
	for i := 0; i < DefaultHistorySize+1; i++ {
		h.Append(float64(i))
	}

	snap := h.Snapshot()
	require.Len(t, snap, DefaultHistorySize)
	// 51 appends into capacity 50 drop exactly the first one.
	assert.Equal(t, 1.0, snap[0])
	assert.Equal(t, float64(DefaultHistorySize), snap[len(snap)-1])
}

func TestHistory_WrapsAroundRepeatedly(t *testing.T) {
	h := NewHistory(4)
	for v := 1; v <= 11; v++ {
		h.Append(float64(v))
	}

	assert.Equal(t, []float64{8, 9, 10, 11}, h.Snapshot())
}

func TestHistory_SnapshotIsCopy(t *testing.T) {
	h := NewHistory(3)
	h.Append(1)

	snap := h.Snapshot()
	snap[0] = 99

	assert.Equal(t, []float64{1}, h.Snapshot())
}
