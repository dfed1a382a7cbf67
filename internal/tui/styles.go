// Package tui implements the terminal UI: an interactive chat view for
// the course assistant and a step-through view that animates k-means
// convergence one iteration at a time.
package tui

import "github.com/charmbracelet/lipgloss"

// clusterColors colors cluster glyphs in the lab view; indices wrap.
var clusterColors = []lipgloss.Color{
	"4", "2", "3", "1", "6", "5", "10", "12", "13",
}

// Styles holds the TUI styling definitions.
type Styles struct {
	Title          lipgloss.Style
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	Status         lipgloss.Style
	Error          lipgloss.Style
	Help           lipgloss.Style
	Plot           lipgloss.Style
	Centroid       lipgloss.Style
	Clusters       []lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() Styles {
	s := Styles{
		Title:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		UserLabel:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		AssistantLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		Status:         lipgloss.NewStyle().Faint(true),
		Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Help:           lipgloss.NewStyle().Faint(true),
		Plot:           lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Centroid:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
	}
	for _, c := range clusterColors {
		s.Clusters = append(s.Clusters, lipgloss.NewStyle().Foreground(c))
	}
	return s
}
