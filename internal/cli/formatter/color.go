package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/innerpath-app/innerpath/internal/domain"
)

// Palette holds the accent colors for one visual theme.
type Palette struct {
	Accent lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
	Bad    lipgloss.Color
	Dim    lipgloss.Color
	Fg     lipgloss.Color
}

// themes maps profile themes to palettes. Emerald is the default.
var themes = map[domain.Theme]Palette{
	domain.ThemeEmerald: {
		Accent: lipgloss.Color("#34d399"),
		Good:   lipgloss.Color("#8ec07c"),
		Warn:   lipgloss.Color("#fabd2f"),
		Bad:    lipgloss.Color("#fb4934"),
		Dim:    lipgloss.Color("#928374"),
		Fg:     lipgloss.Color("#ebdbb2"),
	},
	domain.ThemeViolet: {
		Accent: lipgloss.Color("#a78bfa"),
		Good:   lipgloss.Color("#8ec07c"),
		Warn:   lipgloss.Color("#fabd2f"),
		Bad:    lipgloss.Color("#fb4934"),
		Dim:    lipgloss.Color("#928374"),
		Fg:     lipgloss.Color("#ebdbb2"),
	},
	domain.ThemeSteel: {
		Accent: lipgloss.Color("#83a598"),
		Good:   lipgloss.Color("#8ec07c"),
		Warn:   lipgloss.Color("#fabd2f"),
		Bad:    lipgloss.Color("#fb4934"),
		Dim:    lipgloss.Color("#928374"),
		Fg:     lipgloss.Color("#ebdbb2"),
	},
}

// Active palette and derived styles. SetTheme swaps these once at startup,
// before any rendering happens.
var (
	palette = themes[domain.ThemeEmerald]

	StyleAccent = lipgloss.NewStyle().Foreground(palette.Accent)
	StyleGood   = lipgloss.NewStyle().Foreground(palette.Good)
	StyleWarn   = lipgloss.NewStyle().Foreground(palette.Warn)
	StyleBad    = lipgloss.NewStyle().Foreground(palette.Bad)
	StyleDim    = lipgloss.NewStyle().Foreground(palette.Dim)
	StyleFg     = lipgloss.NewStyle().Foreground(palette.Fg)
	StyleHeader = lipgloss.NewStyle().Foreground(palette.Accent).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(palette.Fg).Bold(true)
)

// SetTheme switches the active palette. Unknown themes keep the default.
func SetTheme(theme domain.Theme) {
	p, ok := themes[theme]
	if !ok {
		return
	}
	palette = p
	StyleAccent = lipgloss.NewStyle().Foreground(p.Accent)
	StyleHeader = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
}

// AccentColor returns the active theme's accent color.
func AccentColor() lipgloss.Color { return palette.Accent }

// DimColor returns the active theme's muted color.
func DimColor() lipgloss.Color { return palette.Dim }

// PhaseIndicator returns a colored indicator string for a slot phase,
// such as "● LIVE".
func PhaseIndicator(phase domain.SlotPhase) string {
	switch phase {
	case domain.SlotLive:
		return StyleGood.Render("● LIVE")
	case domain.SlotExpired:
		return StyleBad.Render("● MISSED")
	case domain.SlotUpcoming:
		return StyleDim.Render("● UPCOMING")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// Header renders a section header with the accent style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
