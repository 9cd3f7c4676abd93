package styles

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/spacialist/plugin-doctor/internal/config"
)

// Theme defines the color palette for the output channels
type Theme struct {
	Log             color.Color
	Success         color.Color
	Warning         color.Color
	ErrorForeground color.Color
	ErrorBackground color.Color
}

var (
	// DefaultTheme uses the basic 16-color ANSI palette
	DefaultTheme = Theme{
		Log:             lipgloss.Color("4"),
		Success:         lipgloss.Color("2"),
		Warning:         lipgloss.Color("3"),
		ErrorForeground: lipgloss.Color("15"),
		ErrorBackground: lipgloss.Color("1"),
	}

	// NoneTheme renders without any colors (uses terminal defaults)
	NoneTheme = Theme{
		Log:             lipgloss.NoColor{},
		Success:         lipgloss.NoColor{},
		Warning:         lipgloss.NoColor{},
		ErrorForeground: lipgloss.NoColor{},
		ErrorBackground: lipgloss.NoColor{},
	}
)

var themes = map[string]*Theme{
	"default": &DefaultTheme,
	"none":    &NoneTheme,
}

// currentTheme holds the active theme
var currentTheme = DefaultTheme

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init initializes the theme and symbol set from config.
// Call this after loading config and before printing anything.
func Init(cfg config.ThemeConfig) {
	theme, ok := themes[cfg.Name]
	if !ok {
		if cfg.Name != "" {
			fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default (available: %s)\n",
				cfg.Name, strings.Join(config.ValidThemeNames, ", "))
		}
		theme = &DefaultTheme
	}

	currentTheme = *theme
	applyTheme(currentTheme)

	SetASCII(cfg.ASCIISymbols)
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	Log = t.Log
	Success = t.Success
	Warning = t.Warning
	ErrorForeground = t.ErrorForeground
	ErrorBackground = t.ErrorBackground

	LogStyle = lipgloss.NewStyle().Foreground(t.Log)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(t.ErrorForeground).
		Background(t.ErrorBackground)
}
