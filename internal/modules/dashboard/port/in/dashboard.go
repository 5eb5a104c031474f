package in

import (
	"context"

	"edura/internal/modules/dashboard/dto"
)

// Usecase reads the signed-in user's dashboard. An empty role means the
// session's own role.
type Usecase interface {
	Stats(ctx context.Context, role string) (dto.StatsOutput, error)
	Profile(ctx context.Context, role string) (dto.ProfileOutput, error)
	Courses(ctx context.Context, role string) ([]dto.CourseOutput, error)
	Members(ctx context.Context, input dto.ListInput) (dto.MemberPageOutput, error)
}
