package usecase

import (
	"context"
	"fmt"

	"edura/internal/modules/navigation/domain"
	navdto "edura/internal/modules/navigation/dto"
	navin "edura/internal/modules/navigation/port/in"
	navout "edura/internal/modules/navigation/port/out"
	"edura/internal/modules/navigation/service"
	apperrors "edura/internal/platform/errors"
)

type Interactor struct {
	controller *service.Controller
	browser    navout.Browser
}

// NewInteractor wires the controller to browser. browser may be nil, in
// which case native moves are no-ops.
func NewInteractor(controller *service.Controller, browser navout.Browser) navin.Usecase {
	return &Interactor{controller: controller, browser: browser}
}

func (i *Interactor) GoTo(_ context.Context, raw string) (navdto.PageOutput, error) {
	page, ok := domain.ParsePage(raw)
	if !ok {
		return i.output(i.controller.Snapshot()), fmt.Errorf("go to %q: %w", raw, apperrors.ErrInvalidPage)
	}
	i.controller.GoTo(page)
	return i.output(i.controller.Snapshot()), nil
}

func (i *Interactor) GoBack(context.Context) navdto.PageOutput {
	i.controller.GoBack()
	return i.output(i.controller.Snapshot())
}

func (i *Interactor) NativeBack(context.Context) navdto.PageOutput {
	if i.browser != nil {
		i.browser.Back()
	}
	return i.output(i.controller.Snapshot())
}

func (i *Interactor) NativeForward(context.Context) navdto.PageOutput {
	if i.browser != nil {
		i.browser.Forward()
	}
	return i.output(i.controller.Snapshot())
}

func (i *Interactor) OpenURL(_ context.Context, url string) navdto.PageOutput {
	if i.browser != nil {
		i.browser.Visit(url)
	}
	return i.output(i.controller.Snapshot())
}

func (i *Interactor) Current(context.Context) navdto.PageOutput {
	return i.output(i.controller.Snapshot())
}

func (i *Interactor) Pages() []string {
	pages := domain.Pages()
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, string(p))
	}
	return out
}

func (i *Interactor) Subscribe(fn func(navdto.PageOutput)) func() {
	return i.controller.Subscribe(func(s service.State) { fn(i.output(s)) })
}

func (i *Interactor) output(s service.State) navdto.PageOutput {
	out := navdto.PageOutput{
		Current: string(s.Current),
		URL:     s.Current.URL(),
		History: make([]string, 0, len(s.History)),
	}
	if i.browser != nil {
		out.URL = i.browser.URL()
	}
	for _, p := range s.History {
		out.History = append(out.History, string(p))
	}
	return out
}
