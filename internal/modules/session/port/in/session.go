package in

import (
	"context"

	"edura/internal/modules/session/dto"
)

type Usecase interface {
	Rehydrate(ctx context.Context) dto.SessionOutput
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (dto.SessionOutput, error)
	Logout(ctx context.Context) (dto.SessionOutput, error)
	SetCredentials(ctx context.Context, input dto.CredentialsInput) (dto.SessionOutput, error)
	ClearError(ctx context.Context) dto.SessionOutput
	Current(ctx context.Context) dto.SessionOutput
	Subscribe(fn func(dto.SessionOutput)) (unsubscribe func())
}
