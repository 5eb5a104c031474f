package service_test

import (
	"context"
	"errors"
	"testing"

	"edura/internal/modules/dashboard/domain"
	"edura/internal/modules/dashboard/service"
	sessiondomain "edura/internal/modules/session/domain"
	apperrors "edura/internal/platform/errors"
)

type fakeSession struct {
	token       string
	role        sessiondomain.Role
	invalidated int
}

func (f *fakeSession) Credentials(context.Context) (string, sessiondomain.Role, bool) {
	return f.token, f.role, f.token != ""
}

func (f *fakeSession) Invalidate(context.Context) error {
	f.invalidated++
	f.token, f.role = "", ""
	return nil
}

type fakeGateway struct {
	err       error
	gotToken  string
	gotRole   sessiondomain.Role
	gotQuery  domain.ListQuery
	stats     map[string]string
	members   domain.MemberPage
	callCount int
}

func (f *fakeGateway) Stats(_ context.Context, token string, role sessiondomain.Role) (map[string]string, error) {
	f.callCount++
	f.gotToken, f.gotRole = token, role
	return f.stats, f.err
}

func (f *fakeGateway) Profile(_ context.Context, token string, role sessiondomain.Role) (domain.Profile, error) {
	f.callCount++
	f.gotToken, f.gotRole = token, role
	return domain.Profile{Member: domain.Member{ID: "p1", FirstName: "Ada"}}, f.err
}

func (f *fakeGateway) Courses(_ context.Context, token string, role sessiondomain.Role) ([]domain.Course, error) {
	f.callCount++
	f.gotToken, f.gotRole = token, role
	return []domain.Course{{ID: "c1", Name: "Algebra"}}, f.err
}

func (f *fakeGateway) Members(_ context.Context, token string, _ domain.MemberKind, q domain.ListQuery) (domain.MemberPage, error) {
	f.callCount++
	f.gotToken, f.gotQuery = token, q
	return f.members, f.err
}

func TestStatsUseSessionRole(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{stats: map[string]string{"totalCourses": "4", "activeExams": "2"}}
	svc := service.NewService(gw, &fakeSession{token: "tok", role: sessiondomain.RoleTeacher}, nil)

	role, stats, err := svc.Stats(context.Background(), "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if role != sessiondomain.RoleTeacher || gw.gotRole != sessiondomain.RoleTeacher || gw.gotToken != "tok" {
		t.Fatalf("unexpected call: role=%s gw=%s token=%s", role, gw.gotRole, gw.gotToken)
	}
	if len(stats) != 4 || stats[0].Value != "4" || stats[2].Value != "2" || stats[1].Value != "-" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestSuperadminReadsAdminEndpoints(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	svc := service.NewService(gw, &fakeSession{token: "tok", role: sessiondomain.RoleSuperAdmin}, nil)

	profile, err := svc.Profile(context.Background(), sessiondomain.RoleAdmin)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if gw.gotRole != sessiondomain.RoleAdmin || profile.Role != sessiondomain.RoleSuperAdmin {
		t.Fatalf("expected admin endpoint with superadmin profile, got %s %s", gw.gotRole, profile.Role)
	}
}

func TestRejectsWithoutSessionOrForOtherRole(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	if _, _, err := service.NewService(gw, &fakeSession{}, nil).Stats(context.Background(), ""); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("expected no session, got %v", err)
	}
	student := &fakeSession{token: "tok", role: sessiondomain.RoleStudent}
	svc := service.NewService(gw, student, nil)
	if _, err := svc.Courses(context.Background(), sessiondomain.RoleTeacher); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.Members(context.Background(), domain.MemberStudents, domain.ListQuery{}); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("students listing is admin only, got %v", err)
	}
	if gw.callCount != 0 || student.invalidated != 0 {
		t.Fatalf("local rejections must not reach the gateway or drop the session")
	}
}

func TestServerRejectionDropsSession(t *testing.T) {
	t.Parallel()
	sess := &fakeSession{token: "tok", role: sessiondomain.RoleStudent}
	gw := &fakeGateway{err: &apperrors.APIError{Kind: apperrors.ErrUnauthorized, Status: 401, Message: "jwt expired"}}
	svc := service.NewService(gw, sess, nil)

	_, err := svc.Courses(context.Background(), "")
	if !errors.Is(err, apperrors.ErrUnauthorized) || apperrors.Message(err, "") != "jwt expired" {
		t.Fatalf("expected unauthorized with message, got %v", err)
	}
	if sess.invalidated != 1 {
		t.Fatalf("expected session to be invalidated once, got %d", sess.invalidated)
	}

	other := &fakeSession{token: "tok", role: sessiondomain.RoleStudent}
	gw.err = &apperrors.APIError{Kind: apperrors.ErrServer, Status: 500}
	if _, err := service.NewService(gw, other, nil).Courses(context.Background(), ""); !errors.Is(err, apperrors.ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if other.invalidated != 0 {
		t.Fatalf("server errors must keep the session")
	}
}

func TestMembersNormalizesQuery(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{members: domain.MemberPage{Items: []domain.Member{{ID: "s1"}, {ID: "s2"}}}}
	svc := service.NewService(gw, &fakeSession{token: "tok", role: sessiondomain.RoleAdmin}, nil)

	page, err := svc.Members(context.Background(), domain.MemberTeachers, domain.ListQuery{Limit: 1000, Search: " bo "})
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if gw.gotQuery != (domain.ListQuery{Page: 1, Limit: domain.MaxPageSize, Search: "bo"}) {
		t.Fatalf("query not normalized: %+v", gw.gotQuery)
	}
	if page.Page != 1 || page.Limit != domain.MaxPageSize || page.Total != 2 {
		t.Fatalf("unexpected page metadata: %+v", page)
	}
	if _, err := svc.Members(context.Background(), "parents", domain.ListQuery{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
