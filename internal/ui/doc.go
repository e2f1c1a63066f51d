// Package ui renders the plain (non-dashboard) CLI output: check results
// and inventory tables.
//
// # Symbols
//
//	SymbolSuccess  (checkmark)  - Check passed
//	SymbolFail     (X)          - Check failed
//	SymbolWarn     (filled)     - Check passed with a caveat
//	SymbolPending  (circle)     - Check not run
//
// Colors are ANSI codes (see colors.go) so output follows the terminal theme.
package ui
