package usecase

import (
	"context"
	"fmt"
	"strings"

	"edura/internal/modules/session/domain"
	sessiondto "edura/internal/modules/session/dto"
	sessionin "edura/internal/modules/session/port/in"
	"edura/internal/modules/session/service"
	apperrors "edura/internal/platform/errors"
)

type Interactor struct {
	store *service.Store
}

func NewInteractor(store *service.Store) sessionin.Usecase {
	return &Interactor{store: store}
}

func (i *Interactor) Rehydrate(ctx context.Context) sessiondto.SessionOutput {
	return toOutput(i.store.Rehydrate(ctx))
}

func (i *Interactor) Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.SessionOutput, error) {
	err := i.store.Login(ctx, normalizeRole(input.Role), domain.Credentials{Email: input.Email, Password: input.Password})
	return toOutput(i.store.Snapshot()), err
}

func (i *Interactor) Register(ctx context.Context, input sessiondto.RegisterInput) (sessiondto.SessionOutput, error) {
	err := i.store.Register(ctx, normalizeRole(input.Role), domain.Registration{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Mobile:    input.Mobile,
		NIC:       input.NIC,
		Password:  input.Password,
	})
	return toOutput(i.store.Snapshot()), err
}

func (i *Interactor) Logout(ctx context.Context) (sessiondto.SessionOutput, error) {
	err := i.store.Logout(ctx)
	return toOutput(i.store.Snapshot()), err
}

func (i *Interactor) SetCredentials(ctx context.Context, input sessiondto.CredentialsInput) (sessiondto.SessionOutput, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return toOutput(i.store.Snapshot()), fmt.Errorf("set credentials: %v: %w", err, apperrors.ErrInvalidRole)
	}
	user := domain.User{
		ID:        strings.TrimSpace(input.ID),
		Email:     strings.TrimSpace(input.Email),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Role:      role,
	}
	err = i.store.SetCredentials(ctx, user, strings.TrimSpace(input.Token))
	return toOutput(i.store.Snapshot()), err
}

func (i *Interactor) ClearError(context.Context) sessiondto.SessionOutput {
	i.store.ClearError()
	return toOutput(i.store.Snapshot())
}

func (i *Interactor) Current(context.Context) sessiondto.SessionOutput {
	return toOutput(i.store.Snapshot())
}

func (i *Interactor) Subscribe(fn func(sessiondto.SessionOutput)) func() {
	return i.store.Subscribe(func(s domain.Session) { fn(toOutput(s)) })
}

// normalizeRole only cleans the input. The store rejects roles that cannot
// authenticate and records the failure on the session.
func normalizeRole(raw string) domain.Role {
	return domain.Role(strings.ToLower(strings.TrimSpace(raw)))
}

func toOutput(s domain.Session) sessiondto.SessionOutput {
	out := sessiondto.SessionOutput{
		Authenticated: s.IsAuthenticated(),
		Token:         s.Token,
		Loading:       s.IsLoading,
		Error:         s.Error,
	}
	if s.User != nil {
		u := s.User
		active := u.StudentStatus
		if u.Role == domain.RoleTeacher {
			active = u.TeacherStatus
		}
		out.User = &sessiondto.UserOutput{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Mobile:    u.Mobile,
			Role:      string(u.Role),
			NIC:       u.NIC,
			Active:    active,
		}
	}
	return out
}
