package out_test

import (
	"reflect"
	"testing"

	navadapter "edura/internal/modules/navigation/adapter/out"
	"edura/internal/modules/navigation/domain"
	navout "edura/internal/modules/navigation/port/out"
	"edura/internal/modules/navigation/service"
)

func TestMemoryHistoryBackForward(t *testing.T) {
	t.Parallel()
	h := navadapter.NewMemoryHistory("/")
	var events []navout.PopEvent
	h.OnPopEntry(func(ev navout.PopEvent) { events = append(events, ev) })

	h.PushEntry(domain.PageLogin, "/login")
	h.PushEntry(domain.PageStudentProfile, "/student-profile")
	if h.Len() != 3 || h.URL() != "/student-profile" {
		t.Fatalf("unexpected state: len=%d url=%s", h.Len(), h.URL())
	}

	if !h.Back() || !h.Back() || h.Back() {
		t.Fatalf("expected exactly two back moves")
	}
	want := []navout.PopEvent{
		{Tag: domain.PageLogin, Tagged: true, URL: "/login"},
		{Tag: domain.PageHome, Tagged: true, URL: "/"},
	}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("unexpected events: %+v", events)
	}

	if !h.Forward() || h.URL() != "/login" {
		t.Fatalf("forward should land on /login, got %s", h.URL())
	}
	h.PushEntry(domain.PageRegisterSelect, "/register-select")
	if h.Len() != 3 || h.Forward() {
		t.Fatalf("push must drop forward entries, len=%d", h.Len())
	}
}

func TestControllerOverMemoryHistory(t *testing.T) {
	t.Parallel()
	h := navadapter.NewMemoryHistory("/")
	c := service.NewController(h, h.URL(), nil)

	c.GoTo(domain.PageRegisterSelect)
	c.GoTo(domain.PageTeacherRegister)
	if h.URL() != "/teacher-register" {
		t.Fatalf("native url not updated: %s", h.URL())
	}

	h.Back()
	if c.Current() != domain.PageRegisterSelect {
		t.Fatalf("expected register-select after back, got %s", c.Current())
	}
	if !reflect.DeepEqual(c.History(), []domain.Page{domain.PageHome}) {
		t.Fatalf("unexpected history: %v", c.History())
	}

	h.Visit("/admin-profile")
	if c.Current() != domain.PageAdminProfile {
		t.Fatalf("direct url entry should select admin-profile, got %s", c.Current())
	}
	if !reflect.DeepEqual(c.History(), []domain.Page{domain.PageHome}) {
		t.Fatalf("direct url entry must not touch history: %v", c.History())
	}
}

func TestBackToStartEmptiesHistory(t *testing.T) {
	t.Parallel()
	h := navadapter.NewMemoryHistory("/")
	c := service.NewController(h, h.URL(), nil)

	c.GoTo(domain.PageHome)
	c.GoTo(domain.PageRegisterSelect)
	h.Back()
	if c.Current() != domain.PageHome || len(c.History()) != 0 || h.URL() != "/" {
		t.Fatalf("after back: current=%s history=%v url=%s", c.Current(), c.History(), h.URL())
	}

	h.Forward()
	if c.Current() != domain.PageRegisterSelect || len(c.History()) != 0 || h.URL() != "/register-select" {
		t.Fatalf("after forward: current=%s history=%v url=%s", c.Current(), c.History(), h.URL())
	}
	h.Back()
	if c.Current() != domain.PageHome || h.URL() != "/" {
		t.Fatalf("second back: current=%s url=%s", c.Current(), h.URL())
	}
}

func TestStartEntryTaggedFromURL(t *testing.T) {
	t.Parallel()
	h := navadapter.NewMemoryHistory("/teacher-profile?tab=courses")
	var events []navout.PopEvent
	h.OnPopEntry(func(ev navout.PopEvent) { events = append(events, ev) })

	h.PushEntry(domain.PageLogin, "/login")
	h.Back()
	want := []navout.PopEvent{{Tag: domain.PageTeacherProfile, Tagged: true, URL: "/teacher-profile?tab=courses"}}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("unexpected events: %+v", events)
	}
}
