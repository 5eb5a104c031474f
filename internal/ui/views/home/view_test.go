package home

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"edura/internal/ui/components"
)

func press(m Model, key string) (Model, tea.Msg) {
	var k tea.KeyMsg
	switch key {
	case "enter":
		k = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		k = tea.KeyMsg{Type: tea.KeyTab}
	}
	m, cmd := m.Update(k)
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestGuestActions(t *testing.T) {
	t.Parallel()
	m := New()
	_, msg := press(m, "enter")
	if nav, ok := msg.(components.NavigateMsg); !ok || nav.Page != "register-select" {
		t.Fatalf("expected register-select, got %#v", msg)
	}
	m, _ = press(m, "tab")
	if _, msg = press(m, "enter"); msg != (components.NavigateMsg{Page: "login"}) {
		t.Fatalf("expected login, got %#v", msg)
	}
}

func TestSignedInActions(t *testing.T) {
	t.Parallel()
	m := New()
	m.SetSession("Tess", "teacher-profile")
	_, msg := press(m, "enter")
	if msg != (components.NavigateMsg{Page: "teacher-profile"}) {
		t.Fatalf("expected dashboard, got %#v", msg)
	}
	m, _ = press(m, "tab")
	if _, msg = press(m, "enter"); msg != (components.LogoutMsg{}) {
		t.Fatalf("expected logout, got %#v", msg)
	}
}
