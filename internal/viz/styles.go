package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the side panel styles derived from a theme.
type Styles struct {
	Panel   lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Blast   lipgloss.Style
	Hint    lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Running: lipgloss.NewStyle().Bold(true).Foreground(t.Running),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Paused),
		Blast:   lipgloss.NewStyle().Foreground(t.Blast),
		Hint:    lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
	}
}

// Bar renders a fraction in [0,1] as a fixed-width bar.
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(fraction*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Row renders one "label value" line.
func (s Styles) Row(label, value string) string {
	return s.Label.Render(label) + " " + s.Value.Render(value)
}
