package render

import "github.com/charmbracelet/lipgloss"

// Styles used for console output. lipgloss drops the escape codes when the
// output is not a terminal, so the plain text layout is what gets piped.
type Styles struct {
	Heading lipgloss.Style
	Bar     lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Border  lipgloss.Style
}

// DefaultStyles returns the console color scheme.
func DefaultStyles() Styles {
	packRed := lipgloss.AdaptiveColor{Light: "#C8102E", Dark: "#E4002B"}
	muted := lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6A6A6A"}

	return Styles{
		Heading: lipgloss.NewStyle().Bold(true),
		Bar:     lipgloss.NewStyle().Foreground(packRed),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(packRed).Padding(0, 1),
		Cell:    lipgloss.NewStyle().Padding(0, 1),
		Border:  lipgloss.NewStyle().Foreground(muted),
	}
}

var styles = DefaultStyles()
