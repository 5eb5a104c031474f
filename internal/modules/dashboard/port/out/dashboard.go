package out

import (
	"context"

	"edura/internal/modules/dashboard/domain"
	sessiondomain "edura/internal/modules/session/domain"
)

// Gateway reads dashboard data. role is always an endpoint role.
type Gateway interface {
	Stats(ctx context.Context, token string, role sessiondomain.Role) (map[string]string, error)
	Profile(ctx context.Context, token string, role sessiondomain.Role) (domain.Profile, error)
	Courses(ctx context.Context, token string, role sessiondomain.Role) ([]domain.Course, error)
	Members(ctx context.Context, token string, kind domain.MemberKind, q domain.ListQuery) (domain.MemberPage, error)
}

// Session supplies the bearer credential and drops it once the server has
// rejected it.
type Session interface {
	Credentials(ctx context.Context) (token string, role sessiondomain.Role, ok bool)
	Invalidate(ctx context.Context) error
}
