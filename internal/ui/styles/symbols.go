package styles

// Symbols holds the message prefixes of the output channels
type Symbols struct {
	Usage       string
	Success     string
	Stale       string
	Hint        string
	SystemError string
}

// Default symbols
var defaultSymbols = Symbols{
	Usage:       "🩺",
	Success:     "✔",
	Stale:       "🟡",
	Hint:        "ℹ",
	SystemError: "⚠",
}

// ASCII symbols for terminals without emoji fonts
var asciiSymbols = Symbols{
	Usage:       "+",
	Success:     "[ok]",
	Stale:       "[~]",
	Hint:        "[i]",
	SystemError: "[!]",
}

// currentSymbols holds the active symbol set
var currentSymbols = defaultSymbols

// SetASCII switches between the emoji and the ASCII symbol set
func SetASCII(enabled bool) {
	if enabled {
		currentSymbols = asciiSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}
