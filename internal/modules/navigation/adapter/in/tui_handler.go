package in

import (
	"context"

	navdto "edura/internal/modules/navigation/dto"
	navin "edura/internal/modules/navigation/port/in"
)

type TUIHandler struct {
	usecase navin.Usecase
}

func NewTUIHandler(usecase navin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) GoTo(ctx context.Context, page string) (navdto.PageOutput, error) {
	return h.usecase.GoTo(ctx, page)
}

func (h TUIHandler) GoBack(ctx context.Context) navdto.PageOutput {
	return h.usecase.GoBack(ctx)
}

func (h TUIHandler) Back(ctx context.Context) navdto.PageOutput {
	return h.usecase.NativeBack(ctx)
}

func (h TUIHandler) Forward(ctx context.Context) navdto.PageOutput {
	return h.usecase.NativeForward(ctx)
}

func (h TUIHandler) Open(ctx context.Context, url string) navdto.PageOutput {
	return h.usecase.OpenURL(ctx, url)
}

func (h TUIHandler) Current(ctx context.Context) navdto.PageOutput {
	return h.usecase.Current(ctx)
}

func (h TUIHandler) Pages() []string {
	return h.usecase.Pages()
}

func (h TUIHandler) Subscribe(fn func(navdto.PageOutput)) func() {
	return h.usecase.Subscribe(fn)
}
