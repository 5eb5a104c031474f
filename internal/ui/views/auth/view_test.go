package auth

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "edura/internal/modules/session/dto"
	apperrors "edura/internal/platform/errors"
	"edura/internal/ui/components"
	"edura/internal/ui/components/form"
	"edura/internal/ui/theme"
)

type fakePort struct {
	logins    []string
	registers []sessiondto.RegisterInput
	cleared   int
	fail      string
}

func (f *fakePort) Login(_ context.Context, role, email, _ string) (sessiondto.SessionOutput, error) {
	f.logins = append(f.logins, role+":"+email)
	if f.fail != "" {
		return sessiondto.SessionOutput{Error: f.fail}, &apperrors.APIError{Kind: apperrors.ErrUnauthorized, Message: f.fail}
	}
	return sessiondto.SessionOutput{Authenticated: true, Token: "tok"}, nil
}

func (f *fakePort) Register(_ context.Context, in sessiondto.RegisterInput) (sessiondto.SessionOutput, error) {
	f.registers = append(f.registers, in)
	return sessiondto.SessionOutput{Authenticated: true, Token: "tok"}, nil
}

func (f *fakePort) ClearError(context.Context) sessiondto.SessionOutput {
	f.cleared++
	return sessiondto.SessionOutput{}
}

func TestSelectorNavigatesToRoleForm(t *testing.T) {
	t.Parallel()
	s := NewSelector()
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg := cmd(); msg != (components.NavigateMsg{Page: "teacher-register"}) {
		t.Fatalf("expected teacher-register, got %#v", msg)
	}
}

func TestLoginValidatesBeforeSubmitting(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	l := NewLogin(port, form.NewValidator())

	l, _ = l.Update(form.SubmitMsg{ID: "login", Values: map[string]string{"email": "not-an-email", "password": ""}})
	if len(port.logins) != 0 || l.Loading() {
		t.Fatalf("invalid input must not reach the session")
	}
	if !strings.Contains(l.View(theme.Mocha()), "email must be a valid email address") {
		t.Fatalf("expected inline email error in view")
	}
}

func TestLoginSubmitsWithSelectedRole(t *testing.T) {
	t.Parallel()
	port := &fakePort{fail: "Invalid credentials"}
	l := NewLogin(port, form.NewValidator())
	l, cmd := l.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	cmd()
	if l.Role() != "teacher" || port.cleared != 1 {
		t.Fatalf("ctrl+r should switch to teacher and clear the error, got %s/%d", l.Role(), port.cleared)
	}

	l, cmd = l.Update(form.SubmitMsg{ID: "login", Values: map[string]string{"email": "t@b.com", "password": "pw"}})
	if !l.Loading() || cmd == nil {
		t.Fatalf("valid submit should start loading")
	}
	done, ok := cmd().(DoneMsg)
	if !ok || done.Op != "login" || done.Role != "teacher" {
		t.Fatalf("unexpected done message: %#v", done)
	}
	l, _ = l.Update(done)
	if l.Loading() || !strings.Contains(l.View(theme.Latte()), "Invalid credentials") {
		t.Fatalf("rejection should stop loading and show the message")
	}
	if len(port.logins) != 1 || port.logins[0] != "teacher:t@b.com" {
		t.Fatalf("unexpected logins: %v", port.logins)
	}
}

func TestRegisterChecksConfirmation(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	r := NewRegister(port, form.NewValidator(), "student")
	values := map[string]string{
		"first_name":       "Sam",
		"last_name":        "Lee",
		"email":            "s@b.com",
		"mobile":           "0771234567",
		"nic":              "991234567V",
		"password":         "secret1",
		"confirm_password": "secret2",
	}
	r, _ = r.Update(form.SubmitMsg{ID: "register-student", Values: values})
	if len(port.registers) != 0 || r.Loading() {
		t.Fatalf("mismatched passwords must not submit")
	}

	values["confirm_password"] = "secret1"
	r, cmd := r.Update(form.SubmitMsg{ID: "register-student", Values: values})
	done := cmd().(DoneMsg)
	if done.Err != nil || len(port.registers) != 1 || port.registers[0].Role != "student" || port.registers[0].NIC != "991234567V" {
		t.Fatalf("unexpected registration: %+v %v", port.registers, done.Err)
	}
	r, _ = r.Update(done)
	if r.Loading() {
		t.Fatalf("loading should end after success")
	}

	other := NewRegister(port, form.NewValidator(), "teacher")
	if _, cmd := other.Update(form.SubmitMsg{ID: "register-student", Values: values}); cmd != nil {
		t.Fatalf("a form must ignore submissions for other roles")
	}
}

func TestSupersededResultIsIgnored(t *testing.T) {
	t.Parallel()
	l := NewLogin(&fakePort{}, form.NewValidator())
	l.loading = true
	l, _ = l.Update(DoneMsg{Op: "login", Err: apperrors.ErrSuperseded})
	if !l.Loading() {
		t.Fatalf("superseded result must not end loading")
	}
}
