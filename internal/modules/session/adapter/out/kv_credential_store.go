package out

import (
	"context"
	"encoding/json"
	"fmt"

	"edura/internal/modules/session/domain"
	sessionout "edura/internal/modules/session/port/out"
	apperrors "edura/internal/platform/errors"
	"edura/internal/platform/kvstore"
)

const (
	KeyToken = "token"
	KeyUser  = "user"
)

type KVCredentialStore struct {
	kv kvstore.Store
}

func NewKVCredentialStore(kv kvstore.Store) sessionout.CredentialStore {
	return &KVCredentialStore{kv: kv}
}

func (s *KVCredentialStore) Load(ctx context.Context) (domain.User, string, error) {
	token, hasToken, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("load token: %w", err)
	}
	rawUser, hasUser, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("load user: %w", err)
	}
	if !hasToken && !hasUser {
		return domain.User{}, "", apperrors.ErrNoSession
	}
	if !hasToken || !hasUser {
		return domain.User{}, "", fmt.Errorf("partial stored session (token=%t user=%t)", hasToken, hasUser)
	}
	user := domain.User{}
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return domain.User{}, "", fmt.Errorf("decode stored user: %w", err)
	}
	return user, token, nil
}

func (s *KVCredentialStore) Save(ctx context.Context, user domain.User, token string) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.kv.SetMany(ctx, map[string]string{KeyToken: token, KeyUser: string(payload)}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *KVCredentialStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
