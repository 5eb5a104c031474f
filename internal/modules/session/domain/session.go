package domain

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleTeacher    Role = "teacher"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// LoginRoles are the roles with their own login and registration endpoints.
var LoginRoles = []Role{RoleStudent, RoleTeacher, RoleAdmin}

func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleSuperAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// CanAuthenticate reports whether r can be submitted to login or register.
func (r Role) CanAuthenticate() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// User is the authenticated identity, persisted as JSON under the "user" key.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Mobile        string `json:"mobile,omitempty"`
	Role          Role   `json:"role"`
	NIC           string `json:"nic,omitempty"`
	StudentStatus *bool  `json:"student_status,omitempty"`
	TeacherStatus *bool  `json:"teacher_status,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	NIC       string `json:"nic"`
	Password  string `json:"password"`
}

// Session is the in-memory auth state. User is set iff Token is set.
type Session struct {
	User      *User
	Token     string
	IsLoading bool
	Error     string
}

func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Valid reports whether the user/token pairing invariant holds.
func (s Session) Valid() bool {
	return s.IsAuthenticated() == (s.User != nil)
}

// Role is the authenticated user's role, or "" without a session.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	out := s
	if s.User != nil {
		u := *s.User
		u.StudentStatus = cloneBool(s.User.StudentStatus)
		u.TeacherStatus = cloneBool(s.User.TeacherStatus)
		out.User = &u
	}
	return out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
