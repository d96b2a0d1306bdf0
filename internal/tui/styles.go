package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by every view.
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style

	// List rows (ports, menu, store)
	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style
	MenuItemDim      lipgloss.Style

	// Port indicator in the title bar
	StatusOnline  lipgloss.Style
	StatusOffline lipgloss.Style

	// Field rows and messages
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Report frames the viewport holding command output.
	Report lipgloss.Style
}

// Pack colours: red and charcoal, with green for a live port.
var (
	packRed  = lipgloss.AdaptiveColor{Light: "#C8102E", Dark: "#E4002B"}
	charcoal = lipgloss.AdaptiveColor{Light: "#2B2B2B", Dark: "#D0D0D0"}
	dimGrey  = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6A6A6A"}
	frame    = lipgloss.AdaptiveColor{Light: "#CFCFCF", Dark: "#3A3A3A"}
	live     = lipgloss.AdaptiveColor{Light: "#2E9E4F", Dark: "#5FD77F"}
	amber    = lipgloss.Color("#F2A900")
)

// DefaultStyles returns the default colour scheme.
func DefaultStyles() Styles {
	dim := lipgloss.NewStyle().Foreground(dimGrey)

	return Styles{
		App:      lipgloss.NewStyle().Padding(1, 2),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(packRed).Padding(0, 1),
		Subtitle: dim,
		Help:     dim.MarginTop(1),

		MenuItem:         lipgloss.NewStyle().Foreground(charcoal),
		MenuItemSelected: lipgloss.NewStyle().Foreground(packRed).Bold(true),
		MenuItemDim:      dim.PaddingLeft(2),

		StatusOnline:  lipgloss.NewStyle().Foreground(live).Bold(true),
		StatusOffline: dim.Bold(true),

		Label:   dim.Width(18),
		Value:   lipgloss.NewStyle().Foreground(charcoal),
		Muted:   dim,
		Error:   lipgloss.NewStyle().Foreground(packRed).Bold(true),
		Success: lipgloss.NewStyle().Foreground(live),
		Warning: lipgloss.NewStyle().Foreground(amber),

		Report: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(frame).
			Padding(0, 1),
	}
}
