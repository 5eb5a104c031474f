package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	navdto "edura/internal/modules/navigation/dto"
	routingdto "edura/internal/modules/routing/dto"
	sessiondto "edura/internal/modules/session/dto"
	apperrors "edura/internal/platform/errors"
	"edura/internal/ui/components"
	"edura/internal/ui/components/form"
	"edura/internal/ui/theme"
	"edura/internal/ui/views/auth"
	"edura/internal/ui/views/home"
	"edura/internal/ui/views/profile"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	auth.SessionPort
	Current(ctx context.Context) sessiondto.SessionOutput
	Logout(ctx context.Context) (sessiondto.SessionOutput, error)
}

type navigationPort interface {
	GoTo(ctx context.Context, page string) (navdto.PageOutput, error)
	Back(ctx context.Context) navdto.PageOutput
	Forward(ctx context.Context) navdto.PageOutput
	Open(ctx context.Context, url string) navdto.PageOutput
	Current(ctx context.Context) navdto.PageOutput
	Pages() []string
}

type routingPort interface {
	Current(ctx context.Context) routingdto.ViewOutput
	LandingPage(ctx context.Context) (string, bool)
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Back    key.Binding
	Forward key.Binding
	Palette key.Binding
	Theme   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Back:    key.NewBinding(key.WithKeys("esc", "alt+left"), key.WithHelp("esc", "back")),
		Forward: key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "forward")),
		Palette: key.NewBinding(key.WithKeys(":", "ctrl+p"), key.WithHelp(":", "palette")),
		Theme:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.Forward},
		{k.Palette, k.Theme},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. The view it renders is always the one
// the router resolves for the current page and session; views never pick
// their own successor.
type Model struct {
	session    sessionPort
	navigation navigationPort
	routing    routingPort

	home      home.Model
	selector  auth.Selector
	login     auth.Login
	registers map[string]auth.Register
	profile   profile.Model

	view     routingdto.ViewOutput
	th       theme.Theme
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
	startCmd tea.Cmd
}

func NewModel(session sessionPort, navigation navigationPort, routing routingPort, dashboard profile.DashboardPort, th theme.Theme) Model {
	validator := form.NewValidator()
	registers := map[string]auth.Register{}
	for _, role := range []string{"student", "teacher", "admin"} {
		registers[role] = auth.NewRegister(session, validator, role)
	}
	m := Model{
		session:    session,
		navigation: navigation,
		routing:    routing,
		home:       home.New(),
		selector:   auth.NewSelector(),
		login:      auth.NewLogin(session, validator),
		registers:  registers,
		profile:    profile.New(dashboard),
		th:         th,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(navigation.Pages()),
		status:     "ready",
	}
	m.startCmd = m.activate()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.startCmd
}

// Resolved returns the view descriptor currently on screen.
func (m Model) Resolved() routingdto.ViewOutput { return m.view }

func (m Model) Theme() theme.Theme { return m.th }

func (m Model) Status() string { return m.status }

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	cmd := m.handle(msg)
	return m, tea.Batch(cmd, m.refresh())
}

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	ctx := context.Background()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return nil

	case components.NavigateMsg:
		if _, err := m.navigation.GoTo(ctx, msg.Page); err != nil {
			m.status = err.Error()
		}
		return nil

	case components.BackMsg:
		m.navigation.Back(ctx)
		return nil

	case components.LogoutMsg:
		m.logout(ctx)
		return nil

	case components.StatusMsg:
		m.status = msg.Text
		return nil

	case auth.DoneMsg:
		return m.authDone(ctx, msg)

	case profile.StatsLoadedMsg, profile.ProfileLoadedMsg, profile.CoursesLoadedMsg, profile.MembersLoadedMsg:
		if err := loadErr(msg); errors.Is(err, apperrors.ErrUnauthorized) {
			m.status = "session expired, please sign in again"
		}
		var cmd tea.Cmd
		m.profile, cmd = m.profile.Update(msg)
		return cmd

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(ctx, msg); handled {
			return cmd
		}
	}
	return m.updateActive(msg)
}

func (m *Model) handleKey(ctx context.Context, msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return nil, true
	}
	typing := m.typing()
	switch {
	case msg.String() == "ctrl+c":
		return tea.Quit, true
	case key.Matches(msg, m.keys.Theme):
		m.th = m.th.Toggle()
		m.status = "theme: " + m.th.Name
		return nil, true
	case msg.String() == "ctrl+p" || (msg.String() == ":" && !typing):
		return m.palette.Open(), true
	case msg.String() == "alt+left" || (msg.String() == "esc" && !m.profile.Searching()):
		m.navigation.Back(ctx)
		return nil, true
	case key.Matches(msg, m.keys.Forward):
		m.navigation.Forward(ctx)
		return nil, true
	case typing:
		return nil, false
	case msg.String() == "q":
		return tea.Quit, true
	case msg.String() == "?":
		m.showHelp = true
		return nil, true
	}
	return nil, false
}

// typing reports whether the active view owns printable keys.
func (m Model) typing() bool {
	switch m.view.View {
	case "login", "student-register", "teacher-register", "admin-register":
		return true
	case "student-profile", "teacher-profile", "admin-profile":
		return m.profile.Searching()
	}
	return false
}

func (m *Model) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v := m.view.View; v {
	case "home":
		m.home, cmd = m.home.Update(msg)
	case "register-select":
		m.selector, cmd = m.selector.Update(msg)
	case "login":
		m.login, cmd = m.login.Update(msg)
	case "student-register", "teacher-register", "admin-register":
		role := strings.TrimSuffix(v, "-register")
		r := m.registers[role]
		r, cmd = r.Update(msg)
		m.registers[role] = r
	case "student-profile", "teacher-profile", "admin-profile":
		m.profile, cmd = m.profile.Update(msg)
	}
	return cmd
}

func (m *Model) authDone(ctx context.Context, msg auth.DoneMsg) tea.Cmd {
	var cmd tea.Cmd
	if msg.Op == "login" {
		m.login, cmd = m.login.Update(msg)
	} else if r, ok := m.registers[msg.Role]; ok {
		r, cmd = r.Update(msg)
		m.registers[msg.Role] = r
	}
	switch {
	case msg.Superseded():
	case msg.Err != nil:
		m.status = msg.Op + " failed"
	default:
		m.status = "signed in as " + displayName(msg.Session)
		if page, ok := m.routing.LandingPage(ctx); ok {
			_, _ = m.navigation.GoTo(ctx, page)
		}
	}
	return cmd
}

func (m *Model) logout(ctx context.Context) {
	if _, err := m.session.Logout(ctx); err != nil {
		m.status = "logout: " + err.Error()
		return
	}
	_, _ = m.navigation.GoTo(ctx, "home")
	m.status = "logged out"
}

// refresh re-resolves the view and prepares the newly shown one.
func (m *Model) refresh() tea.Cmd {
	prev := m.view
	m.view = m.routing.Current(context.Background())
	if prev.View == m.view.View && sameUser(prev.Session, m.view.Session) {
		return nil
	}
	return m.activate()
}

// activate prepares whatever view is resolved now.
func (m *Model) activate() tea.Cmd {
	ctx := context.Background()
	m.view = m.routing.Current(ctx)
	s := m.view.Session
	landing, _ := m.routing.LandingPage(ctx)
	m.home.SetSession(displayName(s), landing)

	switch v := m.view.View; v {
	case "login":
		return m.login.Focus()
	case "student-register", "teacher-register", "admin-register":
		role := strings.TrimSuffix(v, "-register")
		r := m.registers[role]
		cmd := r.Focus()
		m.registers[role] = r
		return cmd
	case "student-profile", "teacher-profile", "admin-profile":
		if s.User == nil {
			return nil
		}
		return m.profile.Activate(s.User.Role, displayName(s))
	}
	return nil
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m *Model) executePalette(input string) tea.Cmd {
	ctx := context.Background()
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}
	switch parts[0] {
	case "go":
		if len(parts) < 2 {
			m.status = "usage: go <page>"
			return nil
		}
		if _, err := m.navigation.GoTo(ctx, parts[1]); err != nil {
			m.status = err.Error()
		}
	case "back":
		m.navigation.Back(ctx)
	case "forward":
		m.navigation.Forward(ctx)
	case "history":
		nav := m.navigation.Current(ctx)
		if len(nav.History) == 0 {
			m.status = "history: empty"
		} else {
			m.status = "history: " + strings.Join(nav.History, " → ")
		}
	case "open":
		if len(parts) < 2 {
			m.status = "usage: open </path>"
			return nil
		}
		m.navigation.Open(ctx, parts[1])
	case "logout":
		m.logout(ctx)
	case "theme":
		m.th = m.th.Toggle()
		m.status = "theme: " + m.th.Name
	case "pages":
		m.status = strings.Join(m.navigation.Pages(), " ")
	default:
		m.status = "unknown command: " + parts[0]
	}
	return nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View(m.th))
	default:
		content = m.activeView()
	}
	return m.th.App.Render(lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar))
}

func (m Model) activeView() string {
	switch v := m.view.View; v {
	case "home":
		return m.home.View(m.th)
	case "register-select":
		return m.selector.View(m.th)
	case "login":
		return m.login.View(m.th)
	case "student-register", "teacher-register", "admin-register":
		r := m.registers[strings.TrimSuffix(v, "-register")]
		return r.View(m.th)
	case "student-profile", "teacher-profile", "admin-profile":
		return m.profile.View(m.th)
	}
	return ""
}

func (m Model) renderHeader() string {
	left := m.th.Hot.Render("Edura") + "  " + m.th.Muted.Render(m.view.Navigation.URL)
	if m.view.Redirected {
		left += m.th.Muted.Render("  (" + m.view.Requested + " → " + m.view.View + ")")
	}
	right := m.th.Muted.Render("guest")
	if s := m.view.Session; s.Authenticated {
		right = m.th.Good.Render("● " + displayName(s))
	}
	return m.bar(left, right) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.view.Session.Loading {
		left = m.th.Hot.Render("… ") + left
	}
	right := m.th.Muted.Render("esc back · : palette · ctrl+t theme · ? help")
	return "\n" + m.bar(left, right)
}

func (m Model) bar(left, right string) string {
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Background(m.th.Mantle).Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	w := m.width - 4
	m.home, _ = m.home.Update(tea.WindowSizeMsg{Width: w, Height: m.height})
	m.profile.SetWidth(w)
	m.login.SetWidth(min(w, 60))
	for role, r := range m.registers {
		r.SetWidth(min(w, 60))
		m.registers[role] = r
	}
}

func displayName(s sessiondto.SessionOutput) string {
	if s.User == nil {
		return ""
	}
	name := strings.TrimSpace(s.User.FirstName + " " + s.User.LastName)
	if name == "" {
		name = s.User.Email
	}
	return name
}

func sameUser(a, b sessiondto.SessionOutput) bool {
	if a.User == nil || b.User == nil {
		return a.User == nil && b.User == nil
	}
	return a.User.ID == b.User.ID && a.User.Role == b.User.Role
}

func loadErr(msg tea.Msg) error {
	switch msg := msg.(type) {
	case profile.StatsLoadedMsg:
		return msg.Err
	case profile.ProfileLoadedMsg:
		return msg.Err
	case profile.CoursesLoadedMsg:
		return msg.Err
	case profile.MembersLoadedMsg:
		return msg.Err
	}
	return nil
}
