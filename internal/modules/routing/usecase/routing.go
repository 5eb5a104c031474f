package usecase

import (
	"context"
	"strings"

	navdomain "edura/internal/modules/navigation/domain"
	navdto "edura/internal/modules/navigation/dto"
	navin "edura/internal/modules/navigation/port/in"
	"edura/internal/modules/routing/domain"
	routingdto "edura/internal/modules/routing/dto"
	routingin "edura/internal/modules/routing/port/in"
	sessiondomain "edura/internal/modules/session/domain"
	sessiondto "edura/internal/modules/session/dto"
	sessionin "edura/internal/modules/session/port/in"
)

type Interactor struct {
	navigation navin.Usecase
	session    sessionin.Usecase
}

func NewInteractor(navigation navin.Usecase, session sessionin.Usecase) routingin.Usecase {
	return &Interactor{navigation: navigation, session: session}
}

// Current resolves the page the controller holds against the latest session.
func (i *Interactor) Current(ctx context.Context) routingdto.ViewOutput {
	return resolve(i.navigation.Current(ctx), i.session.Current(ctx))
}

// Resolve resolves an arbitrary page against the latest session without
// navigating.
func (i *Interactor) Resolve(ctx context.Context, page string) routingdto.ViewOutput {
	nav := navdto.PageOutput{Current: strings.ToLower(strings.TrimSpace(page))}
	nav.URL = navdomain.Page(nav.Current).URL()
	return resolve(nav, i.session.Current(ctx))
}

func (i *Interactor) LandingPage(ctx context.Context) (string, bool) {
	s := toSession(i.session.Current(ctx))
	if !s.IsAuthenticated() {
		return "", false
	}
	page, ok := domain.ProfileFor(s.Role())
	return string(page), ok
}

// Subscribe calls fn whenever either the page or the session changes.
func (i *Interactor) Subscribe(fn func(routingdto.ViewOutput)) func() {
	ctx := context.Background()
	stopNav := i.navigation.Subscribe(func(nav navdto.PageOutput) {
		fn(resolve(nav, i.session.Current(ctx)))
	})
	stopSession := i.session.Subscribe(func(s sessiondto.SessionOutput) {
		fn(resolve(i.navigation.Current(ctx), s))
	})
	return func() {
		stopNav()
		stopSession()
	}
}

func resolve(nav navdto.PageOutput, s sessiondto.SessionOutput) routingdto.ViewOutput {
	view := domain.Resolve(navdomain.Page(nav.Current), toSession(s))
	return routingdto.ViewOutput{
		View:       string(view.Kind),
		Requested:  string(view.Requested),
		Rule:       string(view.Rule),
		Redirected: view.Redirected(),
		Session:    s,
		Navigation: nav,
	}
}

func toSession(s sessiondto.SessionOutput) sessiondomain.Session {
	out := sessiondomain.Session{Token: s.Token, IsLoading: s.Loading, Error: s.Error}
	if s.User != nil {
		out.User = &sessiondomain.User{ID: s.User.ID, Email: s.User.Email, Role: sessiondomain.Role(s.User.Role)}
	}
	return out
}
