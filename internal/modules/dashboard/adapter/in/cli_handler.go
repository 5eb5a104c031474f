package in

import (
	"context"

	dashdto "edura/internal/modules/dashboard/dto"
	dashin "edura/internal/modules/dashboard/port/in"
)

type CLIHandler struct {
	usecase dashin.Usecase
}

func NewCLIHandler(usecase dashin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context, role string) (dashdto.StatsOutput, error) {
	return h.usecase.Stats(ctx, role)
}

func (h CLIHandler) Profile(ctx context.Context, role string) (dashdto.ProfileOutput, error) {
	return h.usecase.Profile(ctx, role)
}

func (h CLIHandler) Courses(ctx context.Context, role string) ([]dashdto.CourseOutput, error) {
	return h.usecase.Courses(ctx, role)
}

func (h CLIHandler) Students(ctx context.Context, page, limit int, search string) (dashdto.MemberPageOutput, error) {
	return h.usecase.Members(ctx, dashdto.ListInput{Kind: "students", Page: page, Limit: limit, Search: search})
}

func (h CLIHandler) Teachers(ctx context.Context, page, limit int, search string) (dashdto.MemberPageOutput, error) {
	return h.usecase.Members(ctx, dashdto.ListInput{Kind: "teachers", Page: page, Limit: limit, Search: search})
}
