package in

import (
	"context"

	"edura/internal/modules/navigation/dto"
)

type Usecase interface {
	GoTo(ctx context.Context, page string) (dto.PageOutput, error)
	GoBack(ctx context.Context) dto.PageOutput
	NativeBack(ctx context.Context) dto.PageOutput
	NativeForward(ctx context.Context) dto.PageOutput
	OpenURL(ctx context.Context, url string) dto.PageOutput
	Current(ctx context.Context) dto.PageOutput
	Pages() []string
	Subscribe(fn func(dto.PageOutput)) (unsubscribe func())
}
