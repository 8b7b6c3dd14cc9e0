package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the side panel.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Blast   lipgloss.Color
}

var (
	ThemeLanding = Theme{
		Name:    "landing",
		Primary: lipgloss.Color("#3b82f6"),
		Accent:  lipgloss.Color("#14b8a6"),
		Border:  lipgloss.Color("#1e3a5f"),
		Text:    lipgloss.Color("#e5e7eb"),
		Muted:   lipgloss.Color("#6b7280"),
		Running: lipgloss.Color("#22c55e"),
		Paused:  lipgloss.Color("#eab308"),
		Blast:   lipgloss.Color("#ef4444"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#b4b4b4"),
		Border:  lipgloss.Color("#3c3c3c"),
		Text:    lipgloss.Color("#d0d0d0"),
		Muted:   lipgloss.Color("#707070"),
		Running: lipgloss.Color("#ffffff"),
		Paused:  lipgloss.Color("#8c8c8c"),
		Blast:   lipgloss.Color("#ffffff"),
	}

	ThemeEmber = Theme{
		Name:    "ember",
		Primary: lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#feca57"),
		Border:  lipgloss.Color("#4a2c2a"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b6c"),
		Running: lipgloss.Color("#5fd068"),
		Paused:  lipgloss.Color("#ffc048"),
		Blast:   lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeLanding, ThemeMono, ThemeEmber}
)

// GetTheme returns a theme by name, falling back to the landing theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLanding
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
