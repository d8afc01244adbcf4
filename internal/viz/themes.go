package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme defines the color scheme for charts and panels.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Warning   lipgloss.Color

	// Series colors the chart lines in order; the balanced growth path
	// is always drawn in Reference.
	Series    []asciigraph.AnsiColor
	Reference asciigraph.AnsiColor
	Axis      asciigraph.AnsiColor
}

var (
	ThemeTerminal = Theme{
		Name:      "terminal",
		Primary:   lipgloss.Color("86"),
		Secondary: lipgloss.Color("213"),
		Muted:     lipgloss.Color("242"),
		Text:      lipgloss.Color("255"),
		Warning:   lipgloss.Color("220"),
		Series:    []asciigraph.AnsiColor{asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow, asciigraph.Green},
		Reference: asciigraph.DarkGray,
		Axis:      asciigraph.Gray,
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#88ff88"),
		Muted:     lipgloss.Color("#005500"),
		Text:      lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffff00"),
		Series:    []asciigraph.AnsiColor{asciigraph.Green, asciigraph.LightGreen, asciigraph.Yellow, asciigraph.White},
		Reference: asciigraph.DarkGreen,
		Axis:      asciigraph.Green,
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#0088ff"),
		Muted:     lipgloss.Color("#888888"),
		Text:      lipgloss.Color("#ffffff"),
		Warning:   lipgloss.Color("#ffaa00"),
		Series:    []asciigraph.AnsiColor{asciigraph.Default},
		Reference: asciigraph.Default,
		Axis:      asciigraph.Default,
	}

	DefaultTheme = ThemeTerminal

	Themes = []Theme{ThemeTerminal, ThemeRetroGreen, ThemeMinimal}
)

// GetTheme returns a theme by name, or DefaultTheme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return DefaultTheme
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// seriesColor cycles through the theme's series colors.
func (t Theme) seriesColor(i int) asciigraph.AnsiColor {
	if len(t.Series) == 0 {
		return asciigraph.Default
	}
	return t.Series[i%len(t.Series)]
}
