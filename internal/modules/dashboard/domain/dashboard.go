package domain

import (
	"strings"

	sessiondomain "edura/internal/modules/session/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// StatField maps one key of a role's dashboard payload onto a display label.
type StatField struct {
	Key   string
	Label string
}

var statFields = map[sessiondomain.Role][]StatField{
	sessiondomain.RoleStudent: {
		{Key: "enrolledCourses", Label: "Enrolled Courses"},
		{Key: "completedCourses", Label: "Completed Courses"},
		{Key: "pendingExams", Label: "Pending Exams"},
		{Key: "averageScore", Label: "Average Score"},
	},
	sessiondomain.RoleTeacher: {
		{Key: "totalCourses", Label: "Total Courses"},
		{Key: "totalStudents", Label: "Total Students"},
		{Key: "activeExams", Label: "Active Exams"},
		{Key: "averageRating", Label: "Average Rating"},
	},
	sessiondomain.RoleAdmin: {
		{Key: "totalStudents", Label: "Total Students"},
		{Key: "totalTeachers", Label: "Total Teachers"},
		{Key: "totalCourses", Label: "Total Courses"},
		{Key: "totalRevenue", Label: "Total Revenue"},
	},
}

type Stat struct {
	Label string
	Value string
}

// EndpointRole is the role whose endpoints serve r. Superadmins use the admin
// endpoints.
func EndpointRole(r sessiondomain.Role) sessiondomain.Role {
	if r == sessiondomain.RoleSuperAdmin {
		return sessiondomain.RoleAdmin
	}
	return r
}

func StatFields(r sessiondomain.Role) []StatField {
	fields := statFields[EndpointRole(r)]
	out := make([]StatField, len(fields))
	copy(out, fields)
	return out
}

// BuildStats orders values by the role's fields. Missing values show as "-";
// keys outside the field list are ignored.
func BuildStats(r sessiondomain.Role, values map[string]string) []Stat {
	fields := statFields[EndpointRole(r)]
	out := make([]Stat, 0, len(fields))
	for _, f := range fields {
		v := strings.TrimSpace(values[f.Key])
		if v == "" {
			v = "-"
		}
		out = append(out, Stat{Label: f.Label, Value: v})
	}
	return out
}

type Course struct {
	ID          string
	Name        string
	Description string
	Teacher     string
	Price       *float64
	Students    *int
	Active      *bool
}

type Member struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Mobile    string
	Active    *bool
	CreatedAt string
}

func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

type Profile struct {
	Member
	NIC  string
	Role sessiondomain.Role
}

// MemberKind selects an admin user listing.
type MemberKind string

const (
	MemberStudents MemberKind = "students"
	MemberTeachers MemberKind = "teachers"
)

type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Normalize applies the first page and the default page size, and caps the
// limit.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

type MemberPage struct {
	Items []Member
	Page  int
	Limit int
	Total int
}

// Pages is the page count, at least one.
func (p MemberPage) Pages() int {
	if p.Limit < 1 || p.Total <= p.Limit {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}
