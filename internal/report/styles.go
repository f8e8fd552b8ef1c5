package report

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	LightForeground = lipgloss.Color("#101F38")
	LightMuted      = lipgloss.Color("#6a7383")
	DarkForeground  = lipgloss.Color("#f2f2f2")
	DarkMuted       = lipgloss.Color("#8b95a7")

	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{Foreground: LightForeground, Muted: LightMuted}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{Foreground: DarkForeground, Muted: DarkMuted, IsDark: true}
}

// DetectTheme picks dark mode from COLORFGBG or DLCHECK_DARK_MODE=1 and
// falls back to light mode.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// "foreground;background"; 0-6 and 8 are dark backgrounds
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
				return DarkTheme()
			}
		}
	}
	if os.Getenv("DLCHECK_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the styles used by the text report.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Data    lipgloss.Style
	Logic   lipgloss.Style
	Exempt  lipgloss.Style
	Failure lipgloss.Style
	Reason  lipgloss.Style
	Summary lipgloss.Style
}

// NewStyles creates the styles for theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Data: lipgloss.NewStyle().
			Foreground(Info),
		Logic: lipgloss.NewStyle().
			Foreground(Success),
		Exempt: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Failure: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),
		Reason: lipgloss.NewStyle().
			Foreground(Warning),
		Summary: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),
	}
}

// PlainStyles renders every element unstyled.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title: plain, Muted: plain, Data: plain, Logic: plain,
		Exempt: plain, Failure: plain, Reason: plain, Summary: plain,
	}
}
