package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Check passed
	SymbolFail    = "✗" // Check failed
	SymbolPending = "○" // Check not run
	SymbolWarn    = "●" // Check passed with a caveat
)
