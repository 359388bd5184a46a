// Package session manages the client-side login session: the persisted
// bearer token and the resolved current user.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Divyansh670/FeedbackHub/internal/apiclient"
)

// State is the session lifecycle state. A freshly created store is loading
// until Init resolves the persisted token one way or the other; route
// decisions made before that would misfire, so the guard holds them.
type State string

const (
	StateLoading       State = "loading"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// API is the slice of the API client the store uses.
type API interface {
	Login(ctx context.Context, email, password string) (*apiclient.LoginResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*apiclient.User, error)
}

// Store holds the session state. It implements apiclient.TokenSource, so
// the API client and the store are wired to each other: the client asks the
// store for the current token, and the store drives auth calls through the
// client.
type Store struct {
	tokenPath string

	mu    sync.RWMutex
	api   API
	state State
	token string
	user  *apiclient.User
}

// NewStore creates a Store persisting its token at tokenPath.
func NewStore(tokenPath string) *Store {
	return &Store{
		tokenPath: tokenPath,
		state:     StateLoading,
	}
}

// SetAPI attaches the API client. Must be called before Init.
func (s *Store) SetAPI(api API) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = api
}

// Token returns the current bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// State returns the current session state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns the logged-in user, or nil.
func (s *Store) CurrentUser() *apiclient.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Init resolves the persisted token. No token file means anonymous. A stored
// token is verified against the server; a rejected token is discarded so a
// stale session cannot linger. A transport failure leaves the store in the
// loading state and surfaces the error.
func (s *Store) Init(ctx context.Context) error {
	token, err := s.readToken()
	if err != nil {
		return fmt.Errorf("failed to read token file: %w", err)
	}
	if token == "" {
		s.setAnonymous()
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.api.Me(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			slog.Info("stored token rejected, clearing session")
			s.clearToken()
			s.setAnonymous()
			return nil
		}
		s.mu.Lock()
		s.token = ""
		s.mu.Unlock()
		return fmt.Errorf("failed to resolve session: %w", err)
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
	return nil
}

// Login exchanges credentials for a session and persists the token.
func (s *Store) Login(ctx context.Context, email, password string) (*apiclient.User, error) {
	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.writeToken(result.Token); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.token = result.Token
	s.user = &result.User
	s.mu.Unlock()

	return &result.User, nil
}

// Logout revokes the session on the server and clears the local state.
// The local teardown happens even when the server call fails; the session
// row expires on its own either way.
func (s *Store) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	if err != nil && !errors.Is(err, apiclient.ErrUnauthorized) {
		slog.Warn("server logout failed", slog.String("error", err.Error()))
	}

	s.clearToken()
	s.setAnonymous()
	return nil
}

// HandleUnauthorized tears the session down after a request came back 401.
// The token is dead server-side; keeping it would loop every view into the
// same failure.
func (s *Store) HandleUnauthorized() {
	s.clearToken()
	s.setAnonymous()
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
}

// readToken loads the persisted token. A missing file is not an error.
func (s *Store) readToken() (string, error) {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// writeToken persists the token with owner-only permissions.
func (s *Store) writeToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.tokenPath, []byte(token), 0o600)
}

func (s *Store) clearToken() {
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove token file", slog.String("error", err.Error()))
	}
}
