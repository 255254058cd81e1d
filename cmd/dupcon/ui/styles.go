// Package ui renders the dupcon console pages: login, duplicate review,
// and resolved merges. All view state lives in the page models; rendering
// is lipgloss all the way down.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors shared by both themes.
var (
	colorError   = lipgloss.Color("#e53935")
	colorSuccess = lipgloss.Color("#43a047")
	colorWarning = lipgloss.Color("#FFC107")
	colorInfo    = lipgloss.Color("#2196F3")
)

// Theme holds the base color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light scheme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101F38"),
		Accent:     lipgloss.Color("#1565c0"),
		Muted:      lipgloss.Color("#8a919c"),
		Border:     lipgloss.Color("#d6dae0"),
	}
}

// DarkTheme returns the dark scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Accent:     lipgloss.Color("#64b5f6"),
		Muted:      lipgloss.Color("#6b7685"),
		Border:     lipgloss.Color("#2a3850"),
		IsDark:     true,
	}
}

// DetectTheme picks dark mode when DUPCON_DARK_MODE=1, light otherwise.
func DetectTheme() Theme {
	if os.Getenv("DUPCON_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the styled components used across pages.
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Header   lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
	Warning  lipgloss.Style
	Selected lipgloss.Style
	GroupBox lipgloss.Style
	Help     lipgloss.Style

	BannerSuccess lipgloss.Style
	BannerError   lipgloss.Style
	BannerInfo    lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	banner := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	return Styles{
		Theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Body:     lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Accent:   lipgloss.NewStyle().Foreground(theme.Accent),
		Error:    lipgloss.NewStyle().Foreground(colorError),
		Success:  lipgloss.NewStyle().Foreground(colorSuccess),
		Info:     lipgloss.NewStyle().Foreground(colorInfo),
		Warning:  lipgloss.NewStyle().Foreground(colorWarning),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		GroupBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(theme.Muted),

		BannerSuccess: banner.Foreground(colorSuccess),
		BannerError:   banner.Foreground(colorError),
		BannerInfo:    banner.Foreground(colorInfo),
	}
}

// DefaultStyles uses the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
