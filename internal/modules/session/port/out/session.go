package out

import (
	"context"

	"edura/internal/modules/session/domain"
)

type AuthResult struct {
	User  domain.User
	Token string
}

// AuthGateway talks to the role-specific authentication endpoints.
type AuthGateway interface {
	Login(ctx context.Context, role domain.Role, creds domain.Credentials) (AuthResult, error)
	Register(ctx context.Context, role domain.Role, data domain.Registration) (AuthResult, error)
}

// CredentialStore mirrors the session in durable storage. The user and
// token are always written and removed together.
type CredentialStore interface {
	Load(ctx context.Context) (domain.User, string, error)
	Save(ctx context.Context, user domain.User, token string) error
	Clear(ctx context.Context) error
}

// TokenInspector reports whether a stored token is known to be expired.
type TokenInspector interface {
	Expired(token string) bool
}
