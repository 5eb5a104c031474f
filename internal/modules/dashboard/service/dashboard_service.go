package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"edura/internal/modules/dashboard/domain"
	dashout "edura/internal/modules/dashboard/port/out"
	sessiondomain "edura/internal/modules/session/domain"
	apperrors "edura/internal/platform/errors"
	"edura/internal/platform/logging"
)

type Service struct {
	gateway dashout.Gateway
	session dashout.Session
	logger  hclog.Logger
}

func NewService(gateway dashout.Gateway, session dashout.Session, logger hclog.Logger) *Service {
	return &Service{
		gateway: gateway,
		session: session,
		logger:  logging.OrNull(logger).Named("dashboard"),
	}
}

// Stats returns the dashboard counters for role. An empty role means the
// signed-in user's role.
func (s *Service) Stats(ctx context.Context, role sessiondomain.Role) (sessiondomain.Role, []domain.Stat, error) {
	token, role, err := s.authorize(ctx, role)
	if err != nil {
		return "", nil, err
	}
	values, err := s.gateway.Stats(ctx, token, domain.EndpointRole(role))
	if err != nil {
		return "", nil, s.failed(ctx, "stats", err)
	}
	return role, domain.BuildStats(role, values), nil
}

func (s *Service) Profile(ctx context.Context, role sessiondomain.Role) (domain.Profile, error) {
	token, role, err := s.authorize(ctx, role)
	if err != nil {
		return domain.Profile{}, err
	}
	profile, err := s.gateway.Profile(ctx, token, domain.EndpointRole(role))
	if err != nil {
		return domain.Profile{}, s.failed(ctx, "profile", err)
	}
	profile.Role = role
	return profile, nil
}

func (s *Service) Courses(ctx context.Context, role sessiondomain.Role) ([]domain.Course, error) {
	token, role, err := s.authorize(ctx, role)
	if err != nil {
		return nil, err
	}
	courses, err := s.gateway.Courses(ctx, token, domain.EndpointRole(role))
	if err != nil {
		return nil, s.failed(ctx, "courses", err)
	}
	return courses, nil
}

// Members lists students or teachers. Only admins may call it.
func (s *Service) Members(ctx context.Context, kind domain.MemberKind, q domain.ListQuery) (domain.MemberPage, error) {
	if kind != domain.MemberStudents && kind != domain.MemberTeachers {
		return domain.MemberPage{}, fmt.Errorf("list %q: %w", kind, apperrors.ErrInvalidInput)
	}
	token, _, err := s.authorize(ctx, sessiondomain.RoleAdmin)
	if err != nil {
		return domain.MemberPage{}, err
	}
	q = q.Normalize()
	page, err := s.gateway.Members(ctx, token, kind, q)
	if err != nil {
		return domain.MemberPage{}, s.failed(ctx, "list "+string(kind), err)
	}
	if page.Page == 0 {
		page.Page = q.Page
	}
	if page.Limit == 0 {
		page.Limit = q.Limit
	}
	if page.Total < len(page.Items) {
		page.Total = len(page.Items)
	}
	return page, nil
}

// authorize resolves the bearer token and checks that the signed-in role may
// read role's dashboard.
func (s *Service) authorize(ctx context.Context, role sessiondomain.Role) (string, sessiondomain.Role, error) {
	token, current, ok := s.session.Credentials(ctx)
	if !ok {
		return "", "", apperrors.ErrNoSession
	}
	if role == "" {
		role = current
	}
	if domain.EndpointRole(role) != domain.EndpointRole(current) {
		return "", "", fmt.Errorf("%s dashboard as %s: %w", role, current, apperrors.ErrUnauthorized)
	}
	if len(domain.StatFields(role)) == 0 {
		return "", "", fmt.Errorf("dashboard for %q: %w", role, apperrors.ErrInvalidRole)
	}
	return token, current, nil
}

// failed drops the session when the server rejected the token.
func (s *Service) failed(ctx context.Context, op string, err error) error {
	if errors.Is(err, apperrors.ErrUnauthorized) {
		s.logger.Warn("token rejected, signing out", "op", op)
		if ierr := s.session.Invalidate(ctx); ierr != nil {
			s.logger.Error("sign out failed", "error", ierr)
		}
	} else {
		s.logger.Warn(op+" failed", "error", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
