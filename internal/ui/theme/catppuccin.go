package theme

import "github.com/charmbracelet/lipgloss"

const (
	NameDark  = "dark"
	NameLight = "light"
)

// Theme is one Catppuccin flavour plus the styles built from it.
type Theme struct {
	Name string

	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
	Bad        lipgloss.Style
}

// Mocha is the dark flavour.
func Mocha() Theme {
	return build(Theme{
		Name:     NameDark,
		Base:     lipgloss.Color("#1e1e2e"),
		Mantle:   lipgloss.Color("#181825"),
		Surface0: lipgloss.Color("#313244"),
		Surface1: lipgloss.Color("#45475a"),
		Text:     lipgloss.Color("#cdd6f4"),
		Subtext0: lipgloss.Color("#a6adc8"),
		Lavender: lipgloss.Color("#b4befe"),
		Sapphire: lipgloss.Color("#74c7ec"),
		Green:    lipgloss.Color("#a6e3a1"),
		Peach:    lipgloss.Color("#fab387"),
		Red:      lipgloss.Color("#f38ba8"),
	})
}

// Latte is the light flavour.
func Latte() Theme {
	return build(Theme{
		Name:     NameLight,
		Base:     lipgloss.Color("#eff1f5"),
		Mantle:   lipgloss.Color("#e6e9ef"),
		Surface0: lipgloss.Color("#ccd0da"),
		Surface1: lipgloss.Color("#bcc0cc"),
		Text:     lipgloss.Color("#4c4f69"),
		Subtext0: lipgloss.Color("#6c6f85"),
		Lavender: lipgloss.Color("#7287fd"),
		Sapphire: lipgloss.Color("#209fb5"),
		Green:    lipgloss.Color("#40a02b"),
		Peach:    lipgloss.Color("#fe640b"),
		Red:      lipgloss.Color("#d20f39"),
	})
}

// ByName returns the named flavour, dark for anything unknown.
func ByName(name string) Theme {
	if name == NameLight {
		return Latte()
	}
	return Mocha()
}

func (t Theme) Toggle() Theme {
	if t.Name == NameLight {
		return Mocha()
	}
	return Latte()
}

func build(t Theme) Theme {
	t.App = lipgloss.NewStyle().
		Background(t.Base).
		Foreground(t.Text).
		Padding(1, 2)

	t.Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Surface1).
		Background(t.Mantle).
		Foreground(t.Text).
		Padding(1)

	t.PaneActive = t.Pane.BorderForeground(t.Lavender)

	t.Title = lipgloss.NewStyle().Foreground(t.Sapphire).Bold(true)
	t.Muted = lipgloss.NewStyle().Foreground(t.Subtext0)
	t.Hot = lipgloss.NewStyle().Foreground(t.Peach).Bold(true)
	t.Good = lipgloss.NewStyle().Foreground(t.Green)
	t.Bad = lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	return t
}
