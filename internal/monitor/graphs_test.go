package monitor

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageBar(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
		want    string
	}{
		{name: "empty", width: 10, percent: 0, want: "----------"},
		{name: "full", width: 10, percent: 100, want: "██████████"},
		{name: "half", width: 10, percent: 50, want: "█████-----"},
		{name: "floors partial cells", width: 10, percent: 19.9, want: "█---------"},
		{name: "over 100 clamps", width: 4, percent: 250, want: "████"},
		{name: "negative clamps", width: 4, percent: -30, want: "----"},
		{name: "NaN treated as zero", width: 3, percent: math.NaN(), want: "---"},
		{name: "zero width", width: 0, percent: 50, want: ""},
		{name: "negative width", width: -2, percent: 50, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentageBar(tt.width, tt.percent)
			assert.Equal(t, tt.want, got)
			if tt.width > 0 {
				assert.Equal(t, tt.width, utf8.RuneCountInString(got))
			}
		})
	}
}

func TestPercentageBar_Monotonic(t *testing.T) {
	prev := 0
	for p := 0.0; p <= 100; p += 0.5 {
		filled := strings.Count(PercentageBar(37, p), barFill)
		require.GreaterOrEqual(t, filled, prev, "percent %.1f", p)
		prev = filled
	}
	assert.Equal(t, 37, prev)
}

func TestUsageBar(t *testing.T) {
	tests := []struct {
		name  string
		used  uint64
		total uint64
		want  string
	}{
		{name: "zero total", used: 0, total: 0, want: "|-----|"},
		{name: "used without total", used: 10, total: 0, want: "|-----|"},
		{name: "partial", used: 40, total: 100, want: "|██---|"},
		{name: "full", used: 100, total: 100, want: "|█████|"},
		{name: "over full clamps", used: 200, total: 100, want: "|█████|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UsageBar(5, tt.used, tt.total))
		})
	}
}

func TestSparkline(t *testing.T) {
	t.Run("empty input renders a baseline", func(t *testing.T) {
		out := Sparkline(nil, 5)
		assert.NotEmpty(t, out)
		assert.Contains(t, out, "0")
	})

	t.Run("varied data spans multiple rows", func(t *testing.T) {
		out := Sparkline([]float64{0, 2, 4, 8, 4, 2, 10}, 5)
		assert.GreaterOrEqual(t, len(strings.Split(out, "\n")), 2)
	})

	t.Run("width grows with samples", func(t *testing.T) {
		short := make([]float64, 10)
		long := make([]float64, 40)
		for i := range long {
			long[i] = float64(i % 7)
			if i < len(short) {
				short[i] = float64(i % 7)
			}
		}
		assert.Greater(t, maxLineWidth(Sparkline(long, 4)), maxLineWidth(Sparkline(short, 4)))
	})

	t.Run("non-positive height does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() { Sparkline([]float64{1, 2, 3}, 0) })
	})
}

func maxLineWidth(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		if n := utf8.RuneCountInString(line); n > widest {
			widest = n
		}
	}
	return widest
}

func TestMiniSparkline(t *testing.T) {
	tests := []struct {
		name      string
		data      []float64
		width     int
		wantEmpty bool
	}{
		{name: "empty data", data: []float64{}, width: 10, wantEmpty: true},
		{name: "zero width", data: []float64{50}, width: 0, wantEmpty: true},
		{name: "short series padded", data: []float64{10, 50, 90}, width: 5},
		{name: "long series resampled", data: make([]float64, 100), width: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MiniSparkline(tt.data, tt.width)
			if tt.wantEmpty {
				assert.Empty(t, result)
				return
			}
			// Result should be exactly width characters
			assert.Equal(t, tt.width, utf8.RuneCountInString(result))
		})
	}
}

func TestMiniSparkline_PercentScale(t *testing.T) {
	assert.Equal(t, "▁█", MiniSparkline([]float64{0, 100}, 2))
	assert.Equal(t, "  ▁", MiniSparkline([]float64{0}, 3))
}

func TestResampleData_DownsamplingPreservesPeaks(t *testing.T) {
	data := []float64{1, 1, 1, 99, 1, 1, 1, 1}
	got := resampleData(data, 4)

	require.Len(t, got, 4)
	assert.Contains(t, got, 99.0)
}

func TestResampleData_ShortInputUnchanged(t *testing.T) {
	data := []float64{1, 2, 3}
	assert.Equal(t, data, resampleData(data, 10))
	assert.Nil(t, resampleData(nil, 10))
	assert.Nil(t, resampleData(data, 0))
}

func TestFindMinMax(t *testing.T) {
	tests := []struct {
		name          string
		data          []float64
		wantMin       float64
		wantMax       float64
		wantIsPercent bool
	}{
		{"empty data returns percentage defaults", []float64{}, 0, 100, true},
		{"percentage data uses fixed range", []float64{10, 50, 90}, 0, 100, true},
		{"non-percentage data uses actual range", []float64{-50, 200, 500}, -50, 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minVal, maxVal, isPercent := findMinMax(tt.data)
			assert.Equal(t, tt.wantMin, minVal)
			assert.Equal(t, tt.wantMax, maxVal)
			assert.Equal(t, tt.wantIsPercent, isPercent)
		})
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		name string
		val  int
		max  int
		want int
	}{
		{name: "within range", val: 5, max: 10, want: 5},
		{name: "over max", val: 15, max: 10, want: 10},
		{name: "negative clamped to zero", val: -5, max: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampInt(tt.val, tt.max))
		})
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		kBps float64
		want string
	}{
		{0, "0 B/s"},
		{0.5, "500 B/s"},
		{1, "1 kB/s"},
		{1.5, "1.5 kB/s"},
		{2500, "2.5 MB/s"},
		{-3, "0 B/s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRate(tt.kBps))
		})
	}
}
