package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"edura/internal/modules/session/domain"
	sessionout "edura/internal/modules/session/port/out"
	apperrors "edura/internal/platform/errors"
	"edura/internal/platform/logging"
)

const (
	LoginFailed        = "Login failed"
	RegistrationFailed = "Registration failed"
	PersistFailed      = "Could not save session"
)

// Store owns the session state and its durable mirror. Every mutation goes
// through its methods; observers are notified after each transition.
type Store struct {
	gateway sessionout.AuthGateway
	creds   sessionout.CredentialStore
	tokens  sessionout.TokenInspector
	logger  hclog.Logger

	mu        sync.Mutex
	state     domain.Session
	seq       uint64
	nextObs   int
	observers map[int]func(domain.Session)
}

func NewStore(gateway sessionout.AuthGateway, creds sessionout.CredentialStore, tokens sessionout.TokenInspector, logger hclog.Logger) *Store {
	return &Store{
		gateway:   gateway,
		creds:     creds,
		tokens:    tokens,
		logger:    logging.OrNull(logger).Named("session"),
		observers: map[int]func(domain.Session){},
	}
}

// Rehydrate restores a persisted session. Missing, malformed or expired data
// leaves the store unauthenticated; it never fails.
func (s *Store) Rehydrate(ctx context.Context) domain.Session {
	user, token, err := s.creds.Load(ctx)
	switch {
	case errors.Is(err, apperrors.ErrNoSession):
		s.logger.Debug("no stored session")
		return s.reset()
	case err != nil:
		s.logger.Info("discarding unreadable stored session", "error", err)
		s.purge(ctx)
		return s.reset()
	case token == "" || !knownRole(user.Role):
		s.logger.Info("discarding incomplete stored session", "role", user.Role)
		s.purge(ctx)
		return s.reset()
	case s.tokens != nil && s.tokens.Expired(token):
		s.logger.Info("discarding expired stored session", "user_id", user.ID)
		s.purge(ctx)
		return s.reset()
	}

	s.mu.Lock()
	s.state = domain.Session{User: &user, Token: token}
	snap := s.state.Clone()
	s.mu.Unlock()
	s.logger.Info("session restored", "user_id", user.ID, "role", user.Role)
	s.notify(snap)
	return snap
}

func (s *Store) Login(ctx context.Context, role domain.Role, creds domain.Credentials) error {
	return s.authenticate(ctx, "login", role, LoginFailed, func(ctx context.Context) (sessionout.AuthResult, error) {
		return s.gateway.Login(ctx, role, creds)
	})
}

func (s *Store) Register(ctx context.Context, role domain.Role, data domain.Registration) error {
	return s.authenticate(ctx, "register", role, RegistrationFailed, func(ctx context.Context) (sessionout.AuthResult, error) {
		return s.gateway.Register(ctx, role, data)
	})
}

// authenticate runs one login or register request. Only the most recently
// started request may commit; older responses are dropped.
func (s *Store) authenticate(ctx context.Context, op string, role domain.Role, fallback string, call func(context.Context) (sessionout.AuthResult, error)) error {
	if !role.CanAuthenticate() {
		s.mu.Lock()
		s.state.Error = fmt.Sprintf("%s: %q", apperrors.ErrInvalidRole, role)
		snap := s.state.Clone()
		s.mu.Unlock()
		s.notify(snap)
		return fmt.Errorf("%s as %q: %w", op, role, apperrors.ErrInvalidRole)
	}

	s.mu.Lock()
	s.seq++
	ticket := s.seq
	s.state.IsLoading = true
	s.state.Error = ""
	snap := s.state.Clone()
	s.mu.Unlock()
	s.notify(snap)

	result, err := call(ctx)
	if err == nil {
		result.User.Role = role
		if result.Token == "" {
			err = &apperrors.APIError{Kind: apperrors.ErrServer, Err: errors.New("response carried no token")}
		}
	}

	// The ticket check and the write to storage happen under one lock so a
	// stale response can never reach storage.
	s.mu.Lock()
	if ticket != s.seq {
		s.mu.Unlock()
		s.logger.Debug("dropping stale response", "op", op, "role", role)
		return apperrors.ErrSuperseded
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn(op+" rejected", "role", role, "error", err)
		return s.fail(ticket, op, role, apperrors.Message(err, fallback), err)
	}
	if perr := s.creds.Save(ctx, result.User, result.Token); perr != nil {
		s.mu.Unlock()
		s.logger.Error("persist session failed", "op", op, "error", perr)
		return s.fail(ticket, op, role, PersistFailed, perr)
	}
	user := result.User
	s.state = domain.Session{User: &user, Token: result.Token}
	snap = s.state.Clone()
	s.mu.Unlock()

	s.logger.Info(op+" succeeded", "role", role, "user_id", user.ID)
	s.notify(snap)
	return nil
}

func (s *Store) fail(ticket uint64, op string, role domain.Role, message string, cause error) error {
	s.mu.Lock()
	if ticket == s.seq {
		s.state.IsLoading = false
		s.state.Error = message
	}
	snap := s.state.Clone()
	s.mu.Unlock()
	s.notify(snap)
	return fmt.Errorf("%s as %s: %w", op, role, cause)
}

// Logout drops the session locally and purges storage. There is no server
// call.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	s.state = domain.Session{}
	snap := s.state.Clone()
	err := s.creds.Clear(ctx)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("purge stored session failed", "error", err)
	} else {
		s.logger.Info("logged out")
	}
	s.notify(snap)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *Store) ClearError() {
	s.mu.Lock()
	if s.state.Error == "" {
		s.mu.Unlock()
		return
	}
	s.state.Error = ""
	snap := s.state.Clone()
	s.mu.Unlock()
	s.notify(snap)
}

// SetCredentials injects an already-issued session, persisting it first.
func (s *Store) SetCredentials(ctx context.Context, user domain.User, token string) error {
	if token == "" {
		return fmt.Errorf("set credentials: token is required: %w", apperrors.ErrInvalidInput)
	}
	s.mu.Lock()
	if err := s.creds.Save(ctx, user, token); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("set credentials: %w", err)
	}
	s.seq++
	s.state = domain.Session{User: &user, Token: token}
	snap := s.state.Clone()
	s.mu.Unlock()
	s.logger.Info("credentials set", "user_id", user.ID, "role", user.Role)
	s.notify(snap)
	return nil
}

func (s *Store) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn for every future transition and returns a func that
// removes it.
func (s *Store) Subscribe(fn func(domain.Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.nextObs
	s.nextObs++
	s.observers[key] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, key)
	}
}

func (s *Store) reset() domain.Session {
	s.mu.Lock()
	s.state = domain.Session{}
	snap := s.state.Clone()
	s.mu.Unlock()
	s.notify(snap)
	return snap
}

func (s *Store) purge(ctx context.Context) {
	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Error("purge stored session failed", "error", err)
	}
}

func knownRole(r domain.Role) bool {
	return r.CanAuthenticate() || r == domain.RoleSuperAdmin
}

func (s *Store) notify(snap domain.Session) {
	s.mu.Lock()
	fns := make([]func(domain.Session), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap.Clone())
	}
}
