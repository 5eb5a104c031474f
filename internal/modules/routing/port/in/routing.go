package in

import (
	"context"

	"edura/internal/modules/routing/dto"
)

type Usecase interface {
	Current(ctx context.Context) dto.ViewOutput
	Resolve(ctx context.Context, page string) dto.ViewOutput
	// LandingPage is the profile page for the signed-in role.
	LandingPage(ctx context.Context) (page string, ok bool)
	Subscribe(fn func(dto.ViewOutput)) (unsubscribe func())
}
