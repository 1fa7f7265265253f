package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the overlay palette. Colors are lipgloss-compatible hex
// strings.
type Theme struct {
	Name string

	Accent  string // logo
	Text    string
	Muted   string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Progress: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Mode: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		Station: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Paused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Stalled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Buttons: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
	}
}

// Styles holds the resolved lipgloss styles the renderer draws with.
type Styles struct {
	Logo     lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Progress lipgloss.Style
	Mode     lipgloss.Style
	Station  lipgloss.Style
	Title    lipgloss.Style
	Paused   lipgloss.Style
	Stalled  lipgloss.Style
	Buttons  lipgloss.Style
}

var themes = []Theme{
	{
		Name:    "Dracula",
		Accent:  "#bd93f9",
		Text:    "#f8f8f2",
		Muted:   "#6272a4",
		Success: "#50fa7b",
		Warning: "#f1fa8c",
		Danger:  "#ff5555",
		Info:    "#8be9fd",
	},
	{
		Name:    "Nord",
		Accent:  "#88c0d0",
		Text:    "#eceff4",
		Muted:   "#4c566a",
		Success: "#a3be8c",
		Warning: "#ebcb8b",
		Danger:  "#bf616a",
		Info:    "#81a1c1",
	},
}

// ByName returns the named theme, falling back to the first (default)
// theme when the name is unknown.
func ByName(name string) Theme {
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return themes[0]
}
