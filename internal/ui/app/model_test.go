package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	dashdto "edura/internal/modules/dashboard/dto"
	navinadapter "edura/internal/modules/navigation/adapter/in"
	navout "edura/internal/modules/navigation/adapter/out"
	navservice "edura/internal/modules/navigation/service"
	navusecase "edura/internal/modules/navigation/usecase"
	routinginadapter "edura/internal/modules/routing/adapter/in"
	routingusecase "edura/internal/modules/routing/usecase"
	sessioninadapter "edura/internal/modules/session/adapter/in"
	sessiondto "edura/internal/modules/session/dto"
	"edura/internal/ui/components"
	"edura/internal/ui/theme"
	"edura/internal/ui/views/auth"
)

type fakeSession struct {
	current sessiondto.SessionOutput
	logouts int
}

func (f *fakeSession) Rehydrate(context.Context) sessiondto.SessionOutput { return f.current }
func (f *fakeSession) Login(context.Context, sessiondto.LoginInput) (sessiondto.SessionOutput, error) {
	f.current = student()
	return f.current, nil
}
func (f *fakeSession) Register(context.Context, sessiondto.RegisterInput) (sessiondto.SessionOutput, error) {
	return f.current, nil
}
func (f *fakeSession) Logout(context.Context) (sessiondto.SessionOutput, error) {
	f.logouts++
	f.current = sessiondto.SessionOutput{}
	return f.current, nil
}
func (f *fakeSession) SetCredentials(context.Context, sessiondto.CredentialsInput) (sessiondto.SessionOutput, error) {
	return f.current, nil
}
func (f *fakeSession) ClearError(context.Context) sessiondto.SessionOutput { return f.current }
func (f *fakeSession) Current(context.Context) sessiondto.SessionOutput    { return f.current }
func (f *fakeSession) Subscribe(func(sessiondto.SessionOutput)) func()     { return func() {} }

type fakeDashboard struct{}

func (fakeDashboard) Stats(context.Context, string) (dashdto.StatsOutput, error) {
	return dashdto.StatsOutput{}, nil
}
func (fakeDashboard) Profile(context.Context, string) (dashdto.ProfileOutput, error) {
	return dashdto.ProfileOutput{}, nil
}
func (fakeDashboard) Courses(context.Context, string) ([]dashdto.CourseOutput, error) {
	return nil, nil
}
func (fakeDashboard) Students(context.Context, int, int, string) (dashdto.MemberPageOutput, error) {
	return dashdto.MemberPageOutput{}, nil
}
func (fakeDashboard) Teachers(context.Context, int, int, string) (dashdto.MemberPageOutput, error) {
	return dashdto.MemberPageOutput{}, nil
}

func student() sessiondto.SessionOutput {
	return sessiondto.SessionOutput{Authenticated: true, Token: "tok", User: &sessiondto.UserOutput{ID: "s1", FirstName: "Sam", Role: "student"}}
}

func newModel(t *testing.T, startURL string) (Model, *fakeSession) {
	t.Helper()
	browser := navout.NewMemoryHistory(startURL)
	nav := navusecase.NewInteractor(navservice.NewController(browser, startURL, nil), browser)
	sess := &fakeSession{}
	routing := routingusecase.NewInteractor(nav, sess)
	m := NewModel(
		sessioninadapter.NewCLIHandler(sess),
		navinadapter.NewTUIHandler(nav),
		routinginadapter.NewCLIHandler(routing),
		fakeDashboard{},
		theme.Mocha(),
	)
	return m, sess
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return out, cmd
}

func TestGuestIsRedirectedToLoginThenLands(t *testing.T) {
	t.Parallel()
	m, sess := newModel(t, "/student-profile")
	if v := m.Resolved(); v.View != "login" || !v.Redirected || v.Requested != "student-profile" {
		t.Fatalf("guest should see login: %+v", v)
	}

	sess.current = student()
	m, cmd := update(t, m, auth.DoneMsg{Op: "login", Role: "student", Session: sess.current})
	if v := m.Resolved(); v.View != "student-profile" || v.Redirected {
		t.Fatalf("student should land on own profile: %+v", v)
	}
	if cmd == nil {
		t.Fatalf("expected dashboard load commands")
	}
	if !strings.Contains(m.Status(), "Sam") {
		t.Fatalf("unexpected status %q", m.Status())
	}
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()
	m, _ := newModel(t, "/")
	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "go register-select"})
	if v := m.Resolved(); v.View != "register-select" {
		t.Fatalf("expected register-select, got %+v", v)
	}
	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "history"})
	if m.Status() != "history: home" {
		t.Fatalf("unexpected history status %q", m.Status())
	}
	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "go nowhere"})
	if m.Resolved().View != "register-select" || !strings.Contains(m.Status(), "nowhere") {
		t.Fatalf("invalid page must not navigate: %+v %q", m.Resolved(), m.Status())
	}
	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "back"})
	if m.Resolved().View != "home" {
		t.Fatalf("back should return home, got %+v", m.Resolved())
	}
	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "open /login"})
	if m.Resolved().View != "login" {
		t.Fatalf("open should follow the url, got %+v", m.Resolved())
	}
	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "dance"})
	if m.Status() != "unknown command: dance" {
		t.Fatalf("unexpected status %q", m.Status())
	}
}

func TestEscapeUsesNativeBack(t *testing.T) {
	t.Parallel()
	m, _ := newModel(t, "/")
	m, _ = update(t, m, components.NavigateMsg{Page: "register-select"})
	m, _ = update(t, m, components.NavigateMsg{Page: "student-register"})
	if v := m.Resolved(); v.View != "student-register" {
		t.Fatalf("expected student-register, got %+v", v)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if v := m.Resolved(); v.View != "register-select" || len(v.Navigation.History) != 1 {
		t.Fatalf("esc should pop one entry: %+v", v)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if v := m.Resolved(); v.View != "home" || v.Navigation.URL != "/" {
		t.Fatalf("alt+left should reach the start page: %+v", v)
	}
}

func TestLogoutReturnsHome(t *testing.T) {
	t.Parallel()
	m, sess := newModel(t, "/")
	sess.current = student()
	m, _ = update(t, m, components.NavigateMsg{Page: "student-profile"})
	if m.Resolved().View != "student-profile" {
		t.Fatalf("expected profile, got %+v", m.Resolved())
	}
	m, _ = update(t, m, components.LogoutMsg{})
	if sess.logouts != 1 || m.Resolved().View != "home" || m.Status() != "logged out" {
		t.Fatalf("logout should clear and go home: %+v %q", m.Resolved(), m.Status())
	}
}

func TestThemeToggleAndQuit(t *testing.T) {
	t.Parallel()
	m, _ := newModel(t, "/")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Theme().Name != theme.NameLight {
		t.Fatalf("expected light theme, got %s", m.Theme().Name)
	}
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !quits(cmd) {
		t.Fatalf("q should quit on home")
	}
}

func quits(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if quits(c) {
				return true
			}
		}
	}
	return false
}

func TestTypingInFormsStaysOnForm(t *testing.T) {
	t.Parallel()
	m, _ := newModel(t, "/login")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if m.Resolved().View != "login" {
		t.Fatalf("expected login view, got %+v", m.Resolved())
	}
	if out := m.View(); !strings.Contains(out, "Edura") {
		t.Fatalf("header missing from view")
	}
}
