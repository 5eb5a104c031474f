package out

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sendgrid/rest"

	"edura/internal/modules/session/domain"
	sessionout "edura/internal/modules/session/port/out"
	apperrors "edura/internal/platform/errors"
	"edura/internal/platform/restclient"
)

var loginPaths = map[domain.Role]string{
	domain.RoleStudent: "/auth/login",
	domain.RoleTeacher: "/auth/login/teacher",
	domain.RoleAdmin:   "/auth/login/admin",
}

type RESTAuthGateway struct {
	client *restclient.Client
}

func NewRESTAuthGateway(client *restclient.Client) sessionout.AuthGateway {
	return &RESTAuthGateway{client: client}
}

type authResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

func (g *RESTAuthGateway) Login(ctx context.Context, role domain.Role, creds domain.Credentials) (sessionout.AuthResult, error) {
	path, ok := loginPaths[role]
	if !ok {
		return sessionout.AuthResult{}, fmt.Errorf("login as %q: %w", role, apperrors.ErrInvalidRole)
	}
	return g.post(ctx, role, path, creds)
}

func (g *RESTAuthGateway) Register(ctx context.Context, role domain.Role, data domain.Registration) (sessionout.AuthResult, error) {
	if !role.CanAuthenticate() {
		return sessionout.AuthResult{}, fmt.Errorf("register as %q: %w", role, apperrors.ErrInvalidRole)
	}
	return g.post(ctx, role, "/auth/register/"+string(role), data)
}

func (g *RESTAuthGateway) post(ctx context.Context, role domain.Role, path string, body any) (sessionout.AuthResult, error) {
	resp := authResponse{}
	if err := g.client.Do(ctx, restclient.Call{Method: rest.Post, Path: path, Body: body}, &resp); err != nil {
		return sessionout.AuthResult{}, err
	}
	user, err := decodeUser(role, resp.Data)
	if err != nil {
		return sessionout.AuthResult{}, &apperrors.APIError{Kind: apperrors.ErrServer, Message: resp.Message, Err: err}
	}
	return sessionout.AuthResult{User: user, Token: resp.Token}, nil
}

// decodeUser accepts both `data: {...user}` and `data: {"<role>": {...user}}`.
// Ids may arrive as "id" or "_id". Missing or null data yields an empty user;
// the store stamps the role on it.
func decodeUser(role domain.Role, raw json.RawMessage) (domain.User, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return domain.User{}, nil
	}
	wrapped := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return domain.User{}, fmt.Errorf("decode user: %w", err)
	}
	if inner, ok := wrapped[string(role)]; ok {
		raw = inner
	}
	var user struct {
		domain.User
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		return domain.User{}, fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		user.ID = user.MongoID
	}
	return user.User, nil
}
