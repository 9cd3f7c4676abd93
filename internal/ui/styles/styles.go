// Package styles provides the lipgloss styles for the doctor's output
// channels.
//
// The palette follows the classic ANSI colors the doctor has always used:
// blue for plain log lines, green for success, yellow for warnings and
// a red background for errors. Colors are downsampled (or dropped) by the
// colorprofile writer the logger prints through.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Channel colors
var (
	// Log is used for plain progress lines (blue)
	Log color.Color = lipgloss.Color("4")

	// Success is used for checkmarks and positive outcomes (green)
	Success color.Color = lipgloss.Color("2")

	// Warning is used for warnings and stale items (yellow)
	Warning color.Color = lipgloss.Color("3")

	// ErrorBackground is the background of error lines (red)
	ErrorBackground color.Color = lipgloss.Color("1")

	// ErrorForeground is the text color of error lines (white)
	ErrorForeground color.Color = lipgloss.Color("15")
)

// Channel styles
var (
	LogStyle     = lipgloss.NewStyle().Foreground(Log)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().
			Foreground(ErrorForeground).
			Background(ErrorBackground)
)
