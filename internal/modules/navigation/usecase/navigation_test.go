package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	navadapter "edura/internal/modules/navigation/adapter/out"
	navdto "edura/internal/modules/navigation/dto"
	"edura/internal/modules/navigation/service"
	"edura/internal/modules/navigation/usecase"
	apperrors "edura/internal/platform/errors"
)

func TestInteractorDrivesBrowser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	browser := navadapter.NewMemoryHistory("/login")
	uc := usecase.NewInteractor(service.NewController(browser, browser.URL(), nil), browser)

	if out := uc.Current(ctx); out.Current != "login" || out.URL != "/login" {
		t.Fatalf("unexpected start: %+v", out)
	}
	out, err := uc.GoTo(ctx, "register-select")
	if err != nil || out.Current != "register-select" || out.URL != "/register-select" {
		t.Fatalf("goTo: %+v %v", out, err)
	}
	if !reflect.DeepEqual(out.History, []string{"login"}) {
		t.Fatalf("unexpected history: %v", out.History)
	}

	out = uc.NativeBack(ctx)
	if out.Current != "login" || out.URL != "/login" {
		t.Fatalf("native back: %+v", out)
	}
	out = uc.OpenURL(ctx, "/teacher-profile")
	if out.Current != "teacher-profile" || out.URL != "/teacher-profile" {
		t.Fatalf("open url: %+v", out)
	}

	if _, err := uc.GoTo(ctx, "courses"); !errors.Is(err, apperrors.ErrInvalidPage) {
		t.Fatalf("expected invalid page, got %v", err)
	}
	if len(uc.Pages()) != 9 {
		t.Fatalf("expected 9 pages, got %v", uc.Pages())
	}
}

func TestInteractorWithoutBrowser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewController(nil, "/", nil), nil)
	var seen []string
	stop := uc.Subscribe(func(out navdto.PageOutput) { seen = append(seen, out.Current) })
	defer stop()

	_, _ = uc.GoTo(ctx, "login")
	if out := uc.NativeBack(ctx); out.Current != "login" {
		t.Fatalf("native back without browser should be a no-op, got %+v", out)
	}
	if out := uc.GoBack(ctx); out.Current != "home" || out.URL != "/" {
		t.Fatalf("goBack: %+v", out)
	}
	if !reflect.DeepEqual(seen, []string{"login", "home"}) {
		t.Fatalf("unexpected notifications: %v", seen)
	}
}
