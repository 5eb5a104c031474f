package domain_test

import (
	"reflect"
	"testing"

	"edura/internal/modules/dashboard/domain"
	sessiondomain "edura/internal/modules/session/domain"
)

func TestBuildStatsOrdersByRole(t *testing.T) {
	t.Parallel()
	got := domain.BuildStats(sessiondomain.RoleStudent, map[string]string{
		"averageScore":    "87%",
		"enrolledCourses": "8",
		"pendingExams":    " ",
		"unrelated":       "x",
	})
	want := []domain.Stat{
		{Label: "Enrolled Courses", Value: "8"},
		{Label: "Completed Courses", Value: "-"},
		{Label: "Pending Exams", Value: "-"},
		{Label: "Average Score", Value: "87%"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestSuperadminUsesAdminFields(t *testing.T) {
	t.Parallel()
	if domain.EndpointRole(sessiondomain.RoleSuperAdmin) != sessiondomain.RoleAdmin {
		t.Fatalf("superadmin should map to admin endpoints")
	}
	if !reflect.DeepEqual(domain.StatFields(sessiondomain.RoleSuperAdmin), domain.StatFields(sessiondomain.RoleAdmin)) {
		t.Fatalf("superadmin fields differ from admin fields")
	}
	if len(domain.StatFields("guest")) != 0 {
		t.Fatalf("unknown role should have no fields")
	}
}

func TestListQueryNormalize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, want domain.ListQuery
	}{
		{domain.ListQuery{}, domain.ListQuery{Page: 1, Limit: domain.DefaultPageSize}},
		{domain.ListQuery{Page: 3, Limit: 500, Search: "  ali "}, domain.ListQuery{Page: 3, Limit: domain.MaxPageSize, Search: "ali"}},
		{domain.ListQuery{Page: -2, Limit: 25}, domain.ListQuery{Page: 1, Limit: 25}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Fatalf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestMemberPagePages(t *testing.T) {
	t.Parallel()
	if (domain.MemberPage{Limit: 10, Total: 0}).Pages() != 1 {
		t.Fatalf("empty listing has one page")
	}
	if (domain.MemberPage{Limit: 10, Total: 21}).Pages() != 3 {
		t.Fatalf("21 items at 10 per page is 3 pages")
	}
}
