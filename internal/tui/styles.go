package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#8BC34A"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6A737D", Dark: "#8B949E"}
	colorWarning = lipgloss.Color("#FFC107")
	colorBorder  = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#30363D"}
)

// Styles holds the lipgloss styles of the browser.
type Styles struct {
	Title       lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Label       lipgloss.Style
	Candidate   lipgloss.Style
	Selected    lipgloss.Style
	Dropdown    lipgloss.Style
	Message     lipgloss.Style
	Definition  lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default browser styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorAccent).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		Label:       lipgloss.NewStyle().Bold(true).Width(12),
		Candidate:   lipgloss.NewStyle().PaddingLeft(2),
		Selected:    lipgloss.NewStyle().PaddingLeft(2).Bold(true).Foreground(colorAccent),
		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			MarginLeft(12),
		Message:    lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
		Definition: lipgloss.NewStyle().Foreground(colorMuted),
		Status:     lipgloss.NewStyle().Foreground(colorWarning),
		Help:       lipgloss.NewStyle().Foreground(colorMuted),
	}
}
