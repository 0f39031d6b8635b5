package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + styles for one display mode.
// CLI helpers pull from `current`; the interactive program owns its own value.
type Theme struct {
	Name string
	Dark bool

	App, Header, Title, Toggle   lipgloss.Style
	Card, CardName, Detail, Muted lipgloss.Style
	Label, Accent, Success, Error lipgloss.Style
	Input, Selected               lipgloss.Style

	BorderColor lipgloss.Color
	SymSearch   string
	SymNoResult string
}

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

var (
	accentBlue = lipgloss.Color("#3182ce")
	mutedGray  = lipgloss.Color("#a0aec0")
)

var current = NewTheme(ThemeDark)

// NewTheme builds the named theme; anything but "light" is dark.
func NewTheme(name string) Theme {
	if strings.ToLower(name) == ThemeLight {
		return build(ThemeLight, false,
			lipgloss.Color("#f7fafc"), // background
			lipgloss.Color("#ffffff"), // card
			lipgloss.Color("#2d3748"), // text
			lipgloss.Color("#4a5568"), // details
			lipgloss.Color("#e2e8f0"), // border
		)
	}
	return build(ThemeDark, true,
		lipgloss.Color("#1a202c"),
		lipgloss.Color("#2d3748"),
		lipgloss.Color("#ffffff"),
		lipgloss.Color("#e2e8f0"),
		lipgloss.Color("#4a5568"),
	)
}

func build(name string, dark bool, bg, card, fg, detail, border lipgloss.Color) Theme {
	return Theme{
		Name: name,
		Dark: dark,

		App:    lipgloss.NewStyle().Background(bg).Foreground(fg),
		Header: lipgloss.NewStyle().Background(card).Foreground(fg).Padding(0, 2),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(fg),
		Toggle: lipgloss.NewStyle().Foreground(fg),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Background(card).
			Foreground(fg).
			Padding(0, 1),
		CardName: lipgloss.NewStyle().Bold(true).Foreground(fg),
		Detail:   lipgloss.NewStyle().Foreground(detail),
		Muted:    lipgloss.NewStyle().Foreground(mutedGray),

		Label:   lipgloss.NewStyle().Bold(true).Foreground(detail),
		Accent:  lipgloss.NewStyle().Foreground(accentBlue),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accentBlue),

		BorderColor: border,
		SymSearch:   "🔍",
		SymNoResult: "🌍",
	}
}

// Toggled returns the opposite display mode.
func (t Theme) Toggled() Theme {
	if t.Dark {
		return NewTheme(ThemeLight)
	}
	return NewTheme(ThemeDark)
}

// ToggleLabel is the label of the control that switches to the other mode.
func (t Theme) ToggleLabel() string {
	if t.Dark {
		return "☀ Light Mode"
	}
	return "☾ Dark Mode"
}

func SetTheme(name string) { current = NewTheme(name) }

// Expose what renderers need
func Current() Theme { return current }
