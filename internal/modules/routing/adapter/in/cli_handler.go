package in

import (
	"context"

	routingdto "edura/internal/modules/routing/dto"
	routingin "edura/internal/modules/routing/port/in"
)

type CLIHandler struct {
	usecase routingin.Usecase
}

func NewCLIHandler(usecase routingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Current(ctx context.Context) routingdto.ViewOutput {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Resolve(ctx context.Context, page string) routingdto.ViewOutput {
	return h.usecase.Resolve(ctx, page)
}

func (h CLIHandler) LandingPage(ctx context.Context) (string, bool) {
	return h.usecase.LandingPage(ctx)
}

func (h CLIHandler) Subscribe(fn func(routingdto.ViewOutput)) func() {
	return h.usecase.Subscribe(fn)
}
