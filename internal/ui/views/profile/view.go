package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dashdto "edura/internal/modules/dashboard/dto"
	apperrors "edura/internal/platform/errors"
	"edura/internal/ui/components"
	"edura/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type DashboardPort interface {
	Stats(ctx context.Context, role string) (dashdto.StatsOutput, error)
	Profile(ctx context.Context, role string) (dashdto.ProfileOutput, error)
	Courses(ctx context.Context, role string) ([]dashdto.CourseOutput, error)
	Students(ctx context.Context, page, limit int, search string) (dashdto.MemberPageOutput, error)
	Teachers(ctx context.Context, page, limit int, search string) (dashdto.MemberPageOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StatsLoadedMsg struct {
	Role  string
	Stats dashdto.StatsOutput
	Err   error
}

type ProfileLoadedMsg struct {
	Role    string
	Profile dashdto.ProfileOutput
	Err     error
}

type CoursesLoadedMsg struct {
	Role    string
	Courses []dashdto.CourseOutput
	Err     error
}

type MembersLoadedMsg struct {
	Kind string
	Page dashdto.MemberPageOutput
	Err  error
}

// ─── tabs ────────────────────────────────────────────────────────────────────

const (
	tabOverview = "Overview"
	tabProfile  = "Profile"
	tabCourses  = "Courses"
	tabStudents = "Students"
	tabTeachers = "Teachers"

	pageSize = 10
)

func tabsFor(role string) []string {
	tabs := []string{tabOverview, tabProfile, tabCourses}
	if role == "admin" || role == "superadmin" {
		tabs = append(tabs, tabStudents, tabTeachers)
	}
	return tabs
}

type listing struct {
	page    dashdto.MemberPageOutput
	number  int
	search  string
	loaded  bool
	err     string
	loading bool
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the per-role dashboard behind the profile pages.
type Model struct {
	port DashboardPort
	role string
	name string

	tabs    []string
	tab     int
	sidebar bool

	stats    dashdto.StatsOutput
	profile  dashdto.ProfileOutput
	courses  []dashdto.CourseOutput
	members  map[string]*listing
	errs     map[string]string
	loading  map[string]bool
	search   textinput.Model
	querying bool

	width int
}

func New(port DashboardPort) Model {
	ti := textinput.New()
	ti.Placeholder = "search by name or email"
	ti.CharLimit = 64
	return Model{port: port, search: ti}
}

func (m Model) Role() string { return m.role }

// Searching reports whether the search box holds the keyboard.
func (m Model) Searching() bool { return m.querying }

// Activate resets the dashboard for role and starts loading it.
func (m *Model) Activate(role, name string) tea.Cmd {
	m.role = role
	m.name = name
	m.tabs = tabsFor(role)
	m.tab = 0
	m.stats = dashdto.StatsOutput{}
	m.profile = dashdto.ProfileOutput{}
	m.courses = nil
	m.members = map[string]*listing{
		tabStudents: {number: 1},
		tabTeachers: {number: 1},
	}
	m.errs = map[string]string{}
	m.loading = map[string]bool{tabOverview: true, tabProfile: true, tabCourses: true}
	m.querying = false
	return tea.Batch(m.loadStatsCmd(), m.loadProfileCmd(), m.loadCoursesCmd())
}

func (m *Model) SetWidth(w int) { m.width = w }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case StatsLoadedMsg:
		if msg.Role != m.role {
			return m, nil
		}
		m.loading[tabOverview] = false
		m.errs[tabOverview] = errText(msg.Err)
		if msg.Err == nil {
			m.stats = msg.Stats
		}

	case ProfileLoadedMsg:
		if msg.Role != m.role {
			return m, nil
		}
		m.loading[tabProfile] = false
		m.errs[tabProfile] = errText(msg.Err)
		if msg.Err == nil {
			m.profile = msg.Profile
		}

	case CoursesLoadedMsg:
		if msg.Role != m.role {
			return m, nil
		}
		m.loading[tabCourses] = false
		m.errs[tabCourses] = errText(msg.Err)
		if msg.Err == nil {
			m.courses = msg.Courses
		}

	case MembersLoadedMsg:
		l, ok := m.members[msg.Kind]
		if !ok {
			return m, nil
		}
		l.loading = false
		l.loaded = true
		l.err = errText(msg.Err)
		if msg.Err == nil {
			l.page = msg.Page
		}

	case tea.KeyMsg:
		if m.querying {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if len(m.tabs) == 0 {
		return m, nil
	}
	switch msg.String() {
	case "tab", "right", "l":
		m.tab = (m.tab + 1) % len(m.tabs)
		return m, m.ensureLoaded()
	case "shift+tab", "left", "h":
		m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
		return m, m.ensureLoaded()
	case "ctrl+b":
		m.sidebar = !m.sidebar
	case "r":
		return m, m.reload()
	case "o":
		return m, func() tea.Msg { return components.LogoutMsg{} }
	case "/":
		if l := m.currentListing(); l != nil {
			m.querying = true
			m.search.SetValue(l.search)
			return m, m.search.Focus()
		}
	case "n":
		if l := m.currentListing(); l != nil && l.number < max(l.page.Pages, 1) {
			l.number++
			return m, m.loadMembersCmd(m.tabs[m.tab])
		}
	case "p":
		if l := m.currentListing(); l != nil && l.number > 1 {
			l.number--
			return m, m.loadMembersCmd(m.tabs[m.tab])
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.querying = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.querying = false
		m.search.Blur()
		if l := m.currentListing(); l != nil {
			l.search = strings.TrimSpace(m.search.Value())
			l.number = 1
			return m, m.loadMembersCmd(m.tabs[m.tab])
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) currentListing() *listing {
	if len(m.tabs) == 0 {
		return nil
	}
	return m.members[m.tabs[m.tab]]
}

func (m Model) ensureLoaded() tea.Cmd {
	l := m.currentListing()
	if l == nil || l.loaded || l.loading {
		return nil
	}
	return m.loadMembersCmd(m.tabs[m.tab])
}

func (m Model) reload() tea.Cmd {
	switch name := m.tabs[m.tab]; name {
	case tabOverview:
		m.loading[name] = true
		return m.loadStatsCmd()
	case tabProfile:
		m.loading[name] = true
		return m.loadProfileCmd()
	case tabCourses:
		m.loading[name] = true
		return m.loadCoursesCmd()
	default:
		return m.loadMembersCmd(name)
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadStatsCmd() tea.Cmd {
	port, role := m.port, m.role
	return func() tea.Msg {
		out, err := port.Stats(context.Background(), role)
		return StatsLoadedMsg{Role: role, Stats: out, Err: err}
	}
}

func (m Model) loadProfileCmd() tea.Cmd {
	port, role := m.port, m.role
	return func() tea.Msg {
		out, err := port.Profile(context.Background(), role)
		return ProfileLoadedMsg{Role: role, Profile: out, Err: err}
	}
}

func (m Model) loadCoursesCmd() tea.Cmd {
	port, role := m.port, m.role
	return func() tea.Msg {
		out, err := port.Courses(context.Background(), role)
		return CoursesLoadedMsg{Role: role, Courses: out, Err: err}
	}
}

func (m Model) loadMembersCmd(kind string) tea.Cmd {
	l, ok := m.members[kind]
	if !ok {
		return nil
	}
	l.loading = true
	port, number, search := m.port, l.number, l.search
	return func() tea.Msg {
		var (
			out dashdto.MemberPageOutput
			err error
		)
		if kind == tabStudents {
			out, err = port.Students(context.Background(), number, pageSize, search)
		} else {
			out, err = port.Teachers(context.Background(), number, pageSize, search)
		}
		return MembersLoadedMsg{Kind: kind, Page: out, Err: err}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View(th theme.Theme) string {
	if len(m.tabs) == 0 {
		return ""
	}
	header := th.Title.Render(dashboardTitle(m.role))
	if m.name != "" {
		header += th.Muted.Render("  " + m.name)
	}

	var body string
	switch name := m.tabs[m.tab]; name {
	case tabOverview:
		body = m.viewStats(th)
	case tabProfile:
		body = m.viewProfile(th)
	case tabCourses:
		body = m.viewCourses(th)
	default:
		body = m.viewMembers(th, name)
	}

	help := th.Muted.Render("tab: switch  r: reload  ctrl+b: sidebar  o: log out")
	if m.currentListing() != nil {
		help = th.Muted.Render("tab: switch  /: search  n/p: page  r: reload  o: log out")
	}

	w := m.width
	if w < 40 {
		w = 100
	}
	if m.sidebar {
		side := make([]string, len(m.tabs))
		for i, t := range m.tabs {
			side[i] = tabLabel(th, t, i == m.tab)
		}
		left := th.Pane.Width(18).Render(strings.Join(side, "\n"))
		right := th.PaneActive.Width(max(w-28, 20)).Render(body)
		return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n" + help
	}
	bar := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		bar[i] = tabLabel(th, t, i == m.tab)
	}
	return header + "\n" + strings.Join(bar, th.Muted.Render(" │ ")) + "\n" +
		th.PaneActive.Width(w-4).Render(body) + "\n" + help
}

func (m Model) viewStats(th theme.Theme) string {
	if s := m.state(th, tabOverview); s != "" {
		return s
	}
	cells := make([]string, 0, len(m.stats.Items))
	for _, item := range m.stats.Items {
		cells = append(cells, th.Pane.Width(22).Render(th.Muted.Render(item.Label)+"\n"+th.Hot.Render(item.Value)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) viewProfile(th theme.Theme) string {
	if s := m.state(th, tabProfile); s != "" {
		return s
	}
	p := m.profile
	rows := [][2]string{
		{"Name", strings.TrimSpace(p.FirstName + " " + p.LastName)},
		{"Email", p.Email},
		{"Mobile", p.Mobile},
		{"NIC", p.NIC},
		{"Role", p.Role},
		{"Status", status(p.Active)},
		{"Joined", p.CreatedAt},
	}
	var sb strings.Builder
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", th.Muted.Render(fmt.Sprintf("%-8s", r[0])), r[1]))
	}
	return sb.String()
}

func (m Model) viewCourses(th theme.Theme) string {
	if s := m.state(th, tabCourses); s != "" {
		return s
	}
	if len(m.courses) == 0 {
		return th.Muted.Render("No courses yet.")
	}
	var sb strings.Builder
	for _, c := range m.courses {
		line := th.Hot.Render(c.Name)
		var meta []string
		if c.Teacher != "" {
			meta = append(meta, "by "+c.Teacher)
		}
		if c.Price != nil {
			meta = append(meta, fmt.Sprintf("$%.2f", *c.Price))
		}
		if c.Students != nil {
			meta = append(meta, fmt.Sprintf("%d students", *c.Students))
		}
		if c.Active != nil {
			meta = append(meta, status(c.Active))
		}
		if len(meta) > 0 {
			line += "  " + th.Muted.Render(strings.Join(meta, " · "))
		}
		sb.WriteString(line + "\n")
		if c.Description != "" {
			sb.WriteString("  " + th.Muted.Render(c.Description) + "\n")
		}
	}
	return sb.String()
}

func (m Model) viewMembers(th theme.Theme, kind string) string {
	l := m.members[kind]
	var sb strings.Builder
	if m.querying {
		sb.WriteString("/ " + m.search.View() + "\n\n")
	} else if l.search != "" {
		sb.WriteString(th.Muted.Render("search: "+l.search) + "\n\n")
	}
	switch {
	case l.loading:
		sb.WriteString(th.Muted.Render("loading…"))
		return sb.String()
	case l.err != "":
		sb.WriteString(th.Bad.Render(l.err))
		return sb.String()
	case len(l.page.Items) == 0:
		sb.WriteString(th.Muted.Render("Nobody here yet."))
		return sb.String()
	}
	for _, item := range l.page.Items {
		sb.WriteString(fmt.Sprintf("%-24s %-28s %s\n", item.Name, item.Email, th.Muted.Render(status(item.Active))))
	}
	sb.WriteString("\n" + th.Muted.Render(fmt.Sprintf("page %d/%d · %d total", max(l.page.Page, 1), max(l.page.Pages, 1), l.page.Total)))
	return sb.String()
}

func (m Model) state(th theme.Theme, tab string) string {
	if m.loading[tab] {
		return th.Muted.Render("loading…")
	}
	if e := m.errs[tab]; e != "" {
		return th.Bad.Render(e)
	}
	return ""
}

func dashboardTitle(role string) string {
	switch role {
	case "student":
		return "Student Dashboard"
	case "teacher":
		return "Teacher Dashboard"
	}
	return "Admin Dashboard"
}

func tabLabel(th theme.Theme, name string, active bool) string {
	if active {
		return th.Hot.Render(" " + name + " ")
	}
	return th.Muted.Render(" " + name + " ")
}

func status(active *bool) string {
	switch {
	case active == nil:
		return ""
	case *active:
		return "active"
	}
	return "inactive"
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return apperrors.Message(err, err.Error())
}
