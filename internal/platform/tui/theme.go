package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains all configurable visual styles for the editor.
type Theme struct {
	// Canvas colors
	CheckerLight lipgloss.Color
	CheckerDark  lipgloss.Color
	GridDot      lipgloss.Color
	Outline      lipgloss.Color // Selection and marquee border
	Cursor       lipgloss.Color
	MirrorCursor lipgloss.Color

	// Frame around the canvas
	CanvasBorder lipgloss.Style

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDLabel     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDActive    lipgloss.Style
	HUDSeparator lipgloss.Style

	// Status line
	StatusText  lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		CheckerLight: lipgloss.Color("#3a3a3a"),
		CheckerDark:  lipgloss.Color("#2a2a2a"),
		GridDot:      lipgloss.Color("240"),
		Outline:      lipgloss.Color("226"), // Bright yellow
		Cursor:       lipgloss.Color("255"),
		MirrorCursor: lipgloss.Color("245"),

		CanvasBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		StatusText:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// NeonTheme returns a neon-style theme.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.CheckerLight = lipgloss.Color("#2b1640")
	theme.CheckerDark = lipgloss.Color("#1a0d29")
	theme.Outline = lipgloss.Color("87")       // Neon cyan
	theme.Cursor = lipgloss.Color("199")       // Neon pink
	theme.MirrorCursor = lipgloss.Color("171") // Neon purple
	theme.HUDTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true)
	theme.HUDActive = lipgloss.NewStyle().Foreground(lipgloss.Color("118")).Bold(true)
	theme.CanvasBorder = theme.CanvasBorder.BorderForeground(lipgloss.Color("171"))
	return theme
}

// MonoTheme returns a grayscale theme for terminals with few colors.
func MonoTheme() Theme {
	theme := DefaultTheme()
	theme.CheckerLight = lipgloss.Color("252")
	theme.CheckerDark = lipgloss.Color("248")
	theme.GridDot = lipgloss.Color("244")
	theme.Outline = lipgloss.Color("232")
	theme.Cursor = lipgloss.Color("232")
	theme.MirrorCursor = lipgloss.Color("240")
	theme.HUDTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.HUDActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	return theme
}

// ThemeByName returns the named theme, falling back to the default.
func ThemeByName(name string) Theme {
	switch name {
	case "neon":
		return NeonTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
