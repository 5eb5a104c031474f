package home

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"edura/internal/ui/components"
	"edura/internal/ui/theme"
)

type course struct {
	title      string
	instructor string
	students   int
	rating     float64
	price      float64
}

var popular = []course{
	{"Web Development Bootcamp", "John Smith", 12450, 4.8, 49.99},
	{"Data Science & Machine Learning", "Sarah Johnson", 8920, 4.9, 79.99},
	{"Digital Marketing Mastery", "Mike Chen", 15230, 4.7, 39.99},
	{"UI/UX Design Fundamentals", "Emily Davis", 9850, 4.8, 59.99},
	{"Python Programming Complete", "David Wilson", 18900, 4.9, 44.99},
	{"Business Strategy & Growth", "Lisa Anderson", 6740, 4.7, 89.99},
}

type action struct {
	label string
	msg   tea.Msg
}

// Model is the landing page: hero, popular courses and a call to action.
type Model struct {
	actions []action
	cursor  int
	greet   string
	width   int
}

func New() Model {
	m := Model{}
	m.SetSession("", "")
	return m
}

// SetSession swaps the actions for a guest (name empty) or a signed-in user
// whose dashboard is landing.
func (m *Model) SetSession(name, landing string) {
	if landing == "" {
		m.greet = ""
		m.actions = []action{
			{"Start Learning Free", components.NavigateMsg{Page: "register-select"}},
			{"Sign In", components.NavigateMsg{Page: "login"}},
		}
	} else {
		m.greet = name
		m.actions = []action{
			{"Go to Dashboard", components.NavigateMsg{Page: landing}},
			{"Log Out", components.LogoutMsg{}},
		}
	}
	if m.cursor >= len(m.actions) {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "up", "k", "shift+tab":
			m.cursor = (m.cursor + len(m.actions) - 1) % len(m.actions)
		case "right", "l", "down", "j", "tab":
			m.cursor = (m.cursor + 1) % len(m.actions)
		case "enter":
			selected := m.actions[m.cursor].msg
			return m, func() tea.Msg { return selected }
		}
	}
	return m, nil
}

func (m Model) View(th theme.Theme) string {
	var sb strings.Builder
	sb.WriteString(th.Muted.Render("🎓 Welcome to the Future of Learning") + "\n\n")
	sb.WriteString(th.Title.Render("Master New Skills Anytime, Anywhere") + "\n")
	if m.greet != "" {
		sb.WriteString(th.Good.Render("Welcome back, "+m.greet) + "\n")
	}
	sb.WriteString(th.Muted.Render("Join thousands of learners worldwide. Access expert-led courses, earn certificates, and advance your career.") + "\n\n")

	buttons := make([]string, len(m.actions))
	for i, a := range m.actions {
		if i == m.cursor {
			buttons[i] = th.Hot.Render("[ " + a.label + " ]")
		} else {
			buttons[i] = th.Muted.Render("[ " + a.label + " ]")
		}
	}
	sb.WriteString(strings.Join(buttons, "  ") + "\n\n")

	sb.WriteString(th.Title.Render("Popular Courses") + "\n")
	for _, c := range popular {
		sb.WriteString(fmt.Sprintf("  %-34s %s\n", c.title, th.Muted.Render(fmt.Sprintf("by %-14s ★ %.1f  %6d students  $%.2f", c.instructor, c.rating, c.students, c.price))))
	}
	sb.WriteString("\n" + th.Hot.Render("Ready to Start Your Learning Journey?") + "\n")
	sb.WriteString(th.Muted.Render("No credit card required • 7-day free trial • Cancel anytime") + "\n")

	w := m.width
	if w < 40 {
		w = 100
	}
	return th.Pane.Width(w - 4).Render(sb.String())
}
