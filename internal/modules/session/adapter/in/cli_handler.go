package in

import (
	"context"

	sessiondto "edura/internal/modules/session/dto"
	sessionin "edura/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Rehydrate(ctx context.Context) sessiondto.SessionOutput {
	return h.usecase.Rehydrate(ctx)
}

func (h CLIHandler) Login(ctx context.Context, role, email, password string) (sessiondto.SessionOutput, error) {
	return h.usecase.Login(ctx, sessiondto.LoginInput{Role: role, Email: email, Password: password})
}

func (h CLIHandler) Register(ctx context.Context, input sessiondto.RegisterInput) (sessiondto.SessionOutput, error) {
	return h.usecase.Register(ctx, input)
}

func (h CLIHandler) Logout(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) SetCredentials(ctx context.Context, input sessiondto.CredentialsInput) (sessiondto.SessionOutput, error) {
	return h.usecase.SetCredentials(ctx, input)
}

func (h CLIHandler) ClearError(ctx context.Context) sessiondto.SessionOutput {
	return h.usecase.ClearError(ctx)
}

func (h CLIHandler) Current(ctx context.Context) sessiondto.SessionOutput {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Subscribe(fn func(sessiondto.SessionOutput)) func() {
	return h.usecase.Subscribe(fn)
}
