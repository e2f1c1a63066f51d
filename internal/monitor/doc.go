// Package monitor implements the live host dashboard.
//
// Three units run concurrently:
//
//   - Sampler: a background goroutine measuring network throughput over a
//     10 second window and writing the result to a RateSlot.
//   - Loop: the render loop. Each tick it collects a Snapshot (blocking for
//     the 1 second CPU window), appends the latest rate to the upload and
//     download histories, formats the panels and publishes them.
//   - Model: the Bubble Tea program that owns the terminal and lays the
//     six panels out with lipgloss.
//
// # Message Flow
//
//  1. Collector.Collect reads the host through metrics.Provider
//  2. RateSlot.Load returns the latest throughput, or zero before the first sample
//  3. FormatPanels turns the tick's data into one Panel per Region
//  4. ProgramSurface.Publish sends each panel to the program as a panelMsg
//  5. View() re-renders the dashboard with the new panels
//
// # Degradation
//
// Every snapshot field is a Metric carrying a Status. A failed read shows
// the previous value marked stale; a missing battery or load average shows
// N/A; a configured interface or volume that doesn't exist turns its panel
// into a warning with a suggestion. No failure stops the loop.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	?           - Toggle help overlay
//	Esc         - Close help
package monitor
