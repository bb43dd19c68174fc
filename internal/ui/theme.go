package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Warn lipgloss.Style
	Selected, Help                             lipgloss.Style

	Border                  lipgloss.Border
	BorderColor             lipgloss.TerminalColor
	SymOK, SymFail, SymItem string
	SlotFilled, SlotEmpty   string
	Cursor                  string
}

var current = classic()

// SetTheme switches the palette. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:        "neon",
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Warn:        lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
			Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			Help:        lipgloss.NewStyle().Faint(true),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("201"),
			SymOK:       "✔", SymFail: "✖", SymItem: "◼",
			SlotFilled: "◼", SlotEmpty: "◻",
			Cursor: "▶ ",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Warn: plain,
			Selected: plain, Help: plain,
			Border: lipgloss.Border{
				Top: "-", Bottom: "-", Left: "|", Right: "|",
				TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
			},
			BorderColor: lipgloss.NoColor{},
			SymOK:       "ok", SymFail: "x", SymItem: "-",
			SlotFilled: "#", SlotEmpty: ".",
			Cursor: "> ",
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Name:        "classic",
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warn:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
		SymOK:       "✔", SymFail: "✖", SymItem: "•",
		SlotFilled: "█", SlotEmpty: "░",
		Cursor: "> ",
	}
}

// Expose what renderers need
func Current() Theme { return current }
