package styles

import (
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/spacialist/plugin-doctor/internal/config"
)

func TestInit_DefaultTheme(t *testing.T) {
	Init(config.ThemeConfig{})

	theme := Current()
	if theme.Success != lipgloss.Color("2") {
		t.Errorf("expected default success color 2, got %v", theme.Success)
	}
	if theme.ErrorBackground != lipgloss.Color("1") {
		t.Errorf("expected default error background 1, got %v", theme.ErrorBackground)
	}
}

func TestInit_NoneTheme(t *testing.T) {
	Init(config.ThemeConfig{Name: "none"})
	defer Init(config.ThemeConfig{})

	theme := Current()
	if _, ok := theme.Log.(lipgloss.NoColor); !ok {
		t.Errorf("expected NoColor for log channel, got %T", theme.Log)
	}
	if _, ok := Success.(lipgloss.NoColor); !ok {
		t.Errorf("expected global Success color to be updated, got %T", Success)
	}
}

func TestInit_UnknownThemeFallsBack(t *testing.T) {
	Init(config.ThemeConfig{Name: "solarized"})
	defer Init(config.ThemeConfig{})

	if Current() != DefaultTheme {
		t.Errorf("expected default theme for unknown name, got %+v", Current())
	}
}

func TestSetASCII(t *testing.T) {
	SetASCII(false)
	if got := CurrentSymbols().Success; got != "✔" {
		t.Errorf("default success symbol = %q, want %q", got, "✔")
	}

	Init(config.ThemeConfig{ASCIISymbols: true})
	if got := CurrentSymbols().Success; got != "[ok]" {
		t.Errorf("ascii success symbol = %q, want %q", got, "[ok]")
	}

	SetASCII(false)
}
