package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Check passed or positive change
	SymbolFail    = "✗" // Check failed
	SymbolWarning = "!" // Potential issue
	SymbolBullet  = "•" // List item
	SymbolArrow   = "→" // Old value to new value
)
