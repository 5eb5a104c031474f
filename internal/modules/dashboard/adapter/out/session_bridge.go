package out

import (
	"context"

	dashout "edura/internal/modules/dashboard/port/out"
	sessiondomain "edura/internal/modules/session/domain"
	sessionin "edura/internal/modules/session/port/in"
)

// SessionBridge reads credentials from the session usecase.
type SessionBridge struct {
	session sessionin.Usecase
}

func NewSessionBridge(session sessionin.Usecase) dashout.Session {
	return &SessionBridge{session: session}
}

func (b *SessionBridge) Credentials(ctx context.Context) (string, sessiondomain.Role, bool) {
	s := b.session.Current(ctx)
	if !s.Authenticated || s.User == nil {
		return "", "", false
	}
	return s.Token, sessiondomain.Role(s.User.Role), true
}

func (b *SessionBridge) Invalidate(ctx context.Context) error {
	_, err := b.session.Logout(ctx)
	return err
}
