// Package ui provides the visual styling for the AgriAssist terminal client.
// Green-forward agricultural palette with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f9fafb") // near-white
	LightForeground = lipgloss.Color("#111827") // gray-900
	LightPrimary    = lipgloss.Color("#16a34a") // green-600
	LightAccent     = lipgloss.Color("#22c55e") // green-500
	LightSecondary  = lipgloss.Color("#e5e7eb") // gray-200
	LightMuted      = lipgloss.Color("#9ca3af") // gray-400
	LightBorder     = lipgloss.Color("#d1d5db") // gray-300
	LightCard       = lipgloss.Color("#ffffff") // white

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#0f1a12")
	DarkForeground = lipgloss.Color("#f3f4f6")
	DarkPrimary    = lipgloss.Color("#4ade80") // green-400
	DarkAccent     = lipgloss.Color("#22c55e")
	DarkSecondary  = lipgloss.Color("#1c2a20")
	DarkMuted      = lipgloss.Color("#4b5563")
	DarkBorder     = lipgloss.Color("#2d3b31")
	DarkCard       = lipgloss.Color("#16231a")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935") // red
	Success     = lipgloss.Color("#22c55e") // green
	Warning     = lipgloss.Color("#FFC107") // yellow
	Info        = lipgloss.Color("#2196F3") // blue
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme auto-detects based on terminal hints or returns light mode
func DetectTheme() Theme {
	// COLORFGBG format is usually "foreground;background"; ANSI indices
	// 0-6 and 8 are dark backgrounds in practice.
	colorTerm := os.Getenv("COLORFGBG")
	if colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("AGRIASSIST_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// ThemeByName resolves a configured theme name, falling back to detection.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Content lipgloss.Style
	Footer  lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Form
	ModuleHeader lipgloss.Style
	ModuleBadge  lipgloss.Style
	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style
	FieldBlurred lipgloss.Style
	OptionOn     lipgloss.Style
	OptionOff    lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner   lipgloss.Style
	Divider   lipgloss.Style
	Badge     lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		ModuleHeader: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginTop(1),

		ModuleBadge: lipgloss.NewStyle().
			Background(theme.Secondary).
			Foreground(theme.Primary).
			Padding(0, 1).
			Bold(true),

		FieldLabel: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		FieldFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		FieldBlurred: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		OptionOn: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		OptionOff: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		TabActive: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		TabIdle: lipgloss.NewStyle().
			Background(theme.Secondary).
			Foreground(theme.Muted).
			Padding(0, 2),
	}
}

// DefaultStyles returns styles with the auto-detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
