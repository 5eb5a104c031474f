package auth

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "edura/internal/modules/session/dto"
	apperrors "edura/internal/platform/errors"
	"edura/internal/ui/components"
	"edura/internal/ui/components/form"
	"edura/internal/ui/theme"
)

type SessionPort interface {
	Login(ctx context.Context, role, email, password string) (sessiondto.SessionOutput, error)
	Register(ctx context.Context, input sessiondto.RegisterInput) (sessiondto.SessionOutput, error)
	ClearError(ctx context.Context) sessiondto.SessionOutput
}

// DoneMsg carries the outcome of a login or register request.
type DoneMsg struct {
	Op      string
	Role    string
	Session sessiondto.SessionOutput
	Err     error
}

// Superseded reports whether a newer request replaced this one.
func (m DoneMsg) Superseded() bool {
	return errors.Is(m.Err, apperrors.ErrSuperseded)
}

var roles = []string{"student", "teacher", "admin"}

func title(role string) string {
	if role == "" {
		return ""
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

// ─── selector ────────────────────────────────────────────────────────────────

type roleCard struct {
	role        string
	description string
}

var cards = []roleCard{
	{"student", "Register as a student to access courses and start learning"},
	{"teacher", "Join as a teacher to create courses and teach students"},
	{"admin", "Register as admin to manage the platform and users"},
}

// Selector picks the account type to register.
type Selector struct {
	cursor int
}

func NewSelector() Selector { return Selector{} }

func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "up", "k", "left", "h", "shift+tab":
		s.cursor = (s.cursor + len(cards) - 1) % len(cards)
	case "down", "j", "right", "l", "tab":
		s.cursor = (s.cursor + 1) % len(cards)
	case "enter":
		page := cards[s.cursor].role + "-register"
		return s, func() tea.Msg { return components.NavigateMsg{Page: page} }
	case "b":
		return s, func() tea.Msg { return components.NavigateMsg{Page: "home"} }
	}
	return s, nil
}

func (s Selector) View(th theme.Theme) string {
	var sb strings.Builder
	sb.WriteString(th.Title.Render("Join Edura") + "\n")
	sb.WriteString(th.Muted.Render("Choose your account type to get started") + "\n\n")
	for i, c := range cards {
		style := th.Pane
		if i == s.cursor {
			style = th.PaneActive
		}
		sb.WriteString(style.Width(60).Render(th.Hot.Render(title(c.role)) + "\n" + c.description))
		sb.WriteString("\n")
	}
	sb.WriteString(th.Muted.Render("enter: continue  b: back to home  esc: back"))
	return sb.String()
}

// ─── register ────────────────────────────────────────────────────────────────

type registration struct {
	FirstName       string `json:"first_name" validate:"notblank"`
	LastName        string `json:"last_name" validate:"notblank"`
	Email           string `json:"email" validate:"required,email"`
	Mobile          string `json:"mobile" validate:"required,numeric,min=9,max=15"`
	NIC             string `json:"nic" validate:"notblank"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Register is the sign-up form for one role.
type Register struct {
	port      SessionPort
	validator *form.Validator
	role      string
	form      form.Form
	loading   bool
	err       string
}

func NewRegister(port SessionPort, validator *form.Validator, role string) Register {
	f := form.New("register-"+role, "Register as "+title(role), []form.Field{
		{Key: "first_name", Label: "First name", Placeholder: "Ada"},
		{Key: "last_name", Label: "Last name", Placeholder: "Lovelace"},
		{Key: "email", Label: "Email", Placeholder: "you@example.com"},
		{Key: "mobile", Label: "Mobile", Placeholder: "0771234567", Limit: 15},
		{Key: "nic", Label: "NIC", Placeholder: "National identity card number", Limit: 12},
		{Key: "password", Label: "Password", Secret: true},
		{Key: "confirm_password", Label: "Confirm password", Secret: true},
	})
	return Register{port: port, validator: validator, role: role, form: f}
}

func (r Register) Role() string { return r.role }

func (r *Register) Focus() tea.Cmd { return r.form.Focus() }

func (r *Register) SetWidth(w int) { r.form.SetWidth(w) }

func (r Register) Loading() bool { return r.loading }

func (r Register) Update(msg tea.Msg) (Register, tea.Cmd) {
	switch msg := msg.(type) {
	case form.SubmitMsg:
		if msg.ID != r.form.ID() || r.loading {
			return r, nil
		}
		in := registration{
			FirstName:       msg.Values["first_name"],
			LastName:        msg.Values["last_name"],
			Email:           msg.Values["email"],
			Mobile:          msg.Values["mobile"],
			NIC:             msg.Values["nic"],
			Password:        msg.Values["password"],
			ConfirmPassword: msg.Values["confirm_password"],
		}
		if errs := r.validator.Struct(in); errs != nil {
			return r, r.form.SetErrors(errs)
		}
		r.form.SetErrors(nil)
		r.loading = true
		r.err = ""
		return r, r.submitCmd(in)

	case DoneMsg:
		if msg.Op != "register" || msg.Role != r.role || msg.Superseded() {
			return r, nil
		}
		r.loading = false
		if msg.Err != nil {
			r.err = msg.Session.Error
			return r, nil
		}
		r.form.Reset()
		return r, nil
	}
	if r.loading {
		return r, nil
	}
	var cmd tea.Cmd
	r.form, cmd = r.form.Update(msg)
	return r, cmd
}

func (r Register) submitCmd(in registration) tea.Cmd {
	port, role := r.port, r.role
	return func() tea.Msg {
		out, err := port.Register(context.Background(), sessiondto.RegisterInput{
			Role:      role,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Mobile:    in.Mobile,
			NIC:       in.NIC,
			Password:  in.Password,
		})
		return DoneMsg{Op: "register", Role: role, Session: out, Err: err}
	}
}

func (r Register) View(th theme.Theme) string {
	var sb strings.Builder
	sb.WriteString(r.form.View(th))
	sb.WriteString(footer(th, r.loading, r.err, "creating account…"))
	sb.WriteString(th.Muted.Render("tab/↑↓: move  enter: next/submit  esc: back"))
	return sb.String()
}

// ─── login ───────────────────────────────────────────────────────────────────

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login is the sign-in form with a role switch.
type Login struct {
	port      SessionPort
	validator *form.Validator
	role      int
	form      form.Form
	loading   bool
	err       string
}

func NewLogin(port SessionPort, validator *form.Validator) Login {
	f := form.New("login", "Sign in", []form.Field{
		{Key: "email", Label: "Email", Placeholder: "you@example.com"},
		{Key: "password", Label: "Password", Secret: true},
	})
	return Login{port: port, validator: validator, form: f}
}

func (l Login) Role() string { return roles[l.role] }

func (l *Login) Focus() tea.Cmd { return l.form.Focus() }

func (l *Login) SetWidth(w int) { l.form.SetWidth(w) }

func (l Login) Loading() bool { return l.loading }

func (l Login) Update(msg tea.Msg) (Login, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+r" && !l.loading {
			l.role = (l.role + 1) % len(roles)
			l.err = ""
			port := l.port
			return l, func() tea.Msg {
				port.ClearError(context.Background())
				return nil
			}
		}

	case form.SubmitMsg:
		if msg.ID != l.form.ID() || l.loading {
			return l, nil
		}
		in := credentials{Email: msg.Values["email"], Password: msg.Values["password"]}
		if errs := l.validator.Struct(in); errs != nil {
			return l, l.form.SetErrors(errs)
		}
		l.form.SetErrors(nil)
		l.loading = true
		l.err = ""
		return l, l.submitCmd(in)

	case DoneMsg:
		if msg.Op != "login" || msg.Superseded() {
			return l, nil
		}
		l.loading = false
		if msg.Err != nil {
			l.err = msg.Session.Error
			return l, nil
		}
		l.form.Reset()
		return l, nil
	}
	if l.loading {
		return l, nil
	}
	var cmd tea.Cmd
	l.form, cmd = l.form.Update(msg)
	return l, cmd
}

func (l Login) submitCmd(in credentials) tea.Cmd {
	port, role := l.port, l.Role()
	return func() tea.Msg {
		out, err := port.Login(context.Background(), role, in.Email, in.Password)
		return DoneMsg{Op: "login", Role: role, Session: out, Err: err}
	}
}

func (l Login) View(th theme.Theme) string {
	var sb strings.Builder
	tabs := make([]string, len(roles))
	for i, r := range roles {
		if i == l.role {
			tabs[i] = th.Hot.Render(" " + title(r) + " ")
		} else {
			tabs[i] = th.Muted.Render(" " + title(r) + " ")
		}
	}
	sb.WriteString(strings.Join(tabs, th.Muted.Render("│")) + "\n\n")
	sb.WriteString(l.form.View(th))
	sb.WriteString(footer(th, l.loading, l.err, "signing in…"))
	sb.WriteString(th.Muted.Render("ctrl+r: switch role  tab/↑↓: move  enter: next/submit  esc: back"))
	return sb.String()
}

func footer(th theme.Theme, loading bool, err, busy string) string {
	switch {
	case loading:
		return th.Hot.Render(busy) + "\n\n"
	case err != "":
		return th.Bad.Render(err) + "\n\n"
	}
	return ""
}
