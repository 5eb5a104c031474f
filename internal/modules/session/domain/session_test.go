package domain_test

import (
	"testing"

	"edura/internal/modules/session/domain"
)

func TestParseRole(t *testing.T) {
	t.Parallel()
	for raw, want := range map[string]domain.Role{
		"student":    domain.RoleStudent,
		" Teacher ":  domain.RoleTeacher,
		"ADMIN":      domain.RoleAdmin,
		"superadmin": domain.RoleSuperAdmin,
	} {
		got, err := domain.ParseRole(raw)
		if err != nil || got != want {
			t.Fatalf("parse %q: got %q err=%v", raw, got, err)
		}
	}
	if _, err := domain.ParseRole("janitor"); err == nil {
		t.Fatalf("unknown role should fail")
	}
	if domain.RoleSuperAdmin.CanAuthenticate() {
		t.Fatalf("superadmin has no login endpoint")
	}
	for _, r := range domain.LoginRoles {
		if !r.CanAuthenticate() {
			t.Fatalf("%s should authenticate", r)
		}
	}
}

func TestSessionInvariantAndClone(t *testing.T) {
	t.Parallel()
	if !(domain.Session{}).Valid() {
		t.Fatalf("empty session is valid")
	}
	if (domain.Session{Token: "t"}).Valid() {
		t.Fatalf("token without user must be invalid")
	}
	if (domain.Session{User: &domain.User{}}).Valid() {
		t.Fatalf("user without token must be invalid")
	}

	active := true
	s := domain.Session{Token: "t", User: &domain.User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Role: domain.RoleStudent, StudentStatus: &active}}
	if !s.Valid() || !s.IsAuthenticated() || s.Role() != domain.RoleStudent {
		t.Fatalf("unexpected session state: %+v", s)
	}
	c := s.Clone()
	c.User.FirstName = "Grace"
	*c.User.StudentStatus = false
	if s.User.FirstName != "Ada" || !*s.User.StudentStatus {
		t.Fatalf("clone shares memory with original")
	}
	if s.User.FullName() != "Ada Lovelace" {
		t.Fatalf("unexpected full name %q", s.User.FullName())
	}
}
