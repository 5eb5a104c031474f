package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"edura/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"go <page>",
	"back",
	"forward",
	"history",
	"open </path>",
	"logout",
	"theme",
	"pages",
}

const recallSize = 20

// Palette is a command overlay. Tab completes the first suggestion; up and
// down walk previously submitted commands.
type Palette struct {
	input   textinput.Model
	pages   []string
	visible bool
	width   int

	recall []string
	// cursor indexes recall while walking it; len(recall) means a fresh line.
	cursor int
}

// NewPalette creates an inactive Palette. pages feed the `go` completions.
func NewPalette(pages []string) Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti, pages: pages}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	p.cursor = len(p.recall)
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			p.remember(val)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if s := p.Suggestions(); len(s) > 0 && !strings.Contains(s[0], "<") {
				p.input.SetValue(s[0])
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			if p.cursor > 0 {
				p.cursor--
				p.input.SetValue(p.recall[p.cursor])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.cursor < len(p.recall) {
				p.cursor++
				val := ""
				if p.cursor < len(p.recall) {
					val = p.recall[p.cursor]
				}
				p.input.SetValue(val)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) remember(val string) {
	if val == "" || (len(p.recall) > 0 && p.recall[len(p.recall)-1] == val) {
		return
	}
	p.recall = append(p.recall, val)
	if len(p.recall) > recallSize {
		p.recall = p.recall[len(p.recall)-recallSize:]
	}
}

// Suggestions returns up to five hints matching the typed prefix. After
// "go " the page identifiers are offered.
func (p Palette) Suggestions() []string {
	prefix := strings.ToLower(p.input.Value())
	candidates := paletteHints
	if strings.HasPrefix(prefix, "go ") {
		candidates = make([]string, 0, len(p.pages))
		for _, page := range p.pages {
			candidates = append(candidates, "go "+page)
		}
	}
	var matching []string
	for _, h := range candidates {
		if prefix == "" || strings.HasPrefix(h, prefix) {
			matching = append(matching, h)
			if len(matching) == 5 {
				break
			}
		}
	}
	return matching
}

func (p Palette) View(th theme.Theme) string {
	if !p.visible {
		return ""
	}
	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(th.Peach).
		Background(th.Mantle).
		Foreground(th.Text).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString(th.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matching := p.Suggestions(); len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(th.Muted.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return style.Width(w - 2).Render(sb.String())
}
