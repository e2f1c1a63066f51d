package monitor

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
)

const (
	barFill  = "█"
	barEmpty = "-"
	barEdge  = "|"
)

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// PercentageBar renders percent (clamped to 0-100) as a bar of exactly
// width runes. Non-positive widths render as "".
func PercentageBar(width int, percent float64) string {
	if width <= 0 {
		return ""
	}
	filled := filledCells(width, percent)
	return strings.Repeat(barFill, filled) + strings.Repeat(barEmpty, width-filled)
}

// UsageBar renders used/total as a PercentageBar framed by '|'.
// A zero total renders an empty bar.
func UsageBar(width int, used, total uint64) string {
	return barEdge + PercentageBar(width, usagePercent(used, total)) + barEdge
}

// usagePercent returns used/total*100, or 0 when total is 0.
func usagePercent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

func filledCells(width int, percent float64) int {
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = math.Max(0, math.Min(100, percent))
	return clampInt(int(math.Floor(float64(width)*percent/100)), width)
}

// Sparkline renders values as a multi-row line plot with a y-axis.
// Width follows the number of samples; an empty series plots a flat zero
// baseline. Non-positive heights are treated as 1.
func Sparkline(values []float64, height int) string {
	if height <= 0 {
		height = 1
	}
	if len(values) == 0 {
		values = []float64{0, 0}
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.Precision(1),
	)
}

// MiniSparkline renders a single-row sparkline using block characters.
// Percentage data (all values within 0-100) is scaled to a fixed 0-100 range.
func MiniSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	minVal, maxVal, _ := findMinMax(data)

	// Short series are drawn as-is, right-aligned, instead of stretched.
	resampled := data
	if len(data) > width {
		resampled = resampleData(data, width)
	}

	var result strings.Builder
	result.WriteString(strings.Repeat(" ", width-len(resampled)))
	for _, val := range resampled {
		normalized := normalizeValue(val, minVal, maxVal)
		idx := clampInt(int(normalized*float64(len(sparklineBlocks)-1)), len(sparklineBlocks)-1)
		result.WriteRune(sparklineBlocks[idx])
	}

	return result.String()
}

// FormatRate formats a kB/s rate using SI prefixes, e.g. "1.5 kB/s".
func FormatRate(kBps float64) string {
	if kBps < 0 || math.IsNaN(kBps) {
		kBps = 0
	}
	return humanize.SIWithDigits(kBps*1000, 1, "B/s")
}

// findMinMax returns the minimum and maximum values in a slice.
// For percentage data (all values 0-100), returns fixed range 0-100.
func findMinMax(data []float64) (minVal, maxVal float64, isPercentage bool) {
	if len(data) == 0 {
		return 0, 100, true
	}

	minVal, maxVal = data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	isPercentage = maxVal <= 100 && minVal >= 0
	if isPercentage {
		minVal = 0
		maxVal = 100
	}

	return minVal, maxVal, isPercentage
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// resampleData shrinks data to targetSize, keeping the max of each bucket
// so short spikes survive.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) <= targetSize {
		return data
	}

	result := make([]float64, targetSize)
	bucketSize := float64(len(data)) / float64(targetSize)
	for i := 0; i < targetSize; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			start = end - 1
		}

		maxVal := data[start]
		for j := start + 1; j < end; j++ {
			if data[j] > maxVal {
				maxVal = data[j]
			}
		}
		result[i] = maxVal
	}
	return result
}
