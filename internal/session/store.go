// Package session holds the process-wide answer to "who is logged in".
// A single Store instance is constructed at startup and passed by
// reference to everything that needs it; it is the sole mutator of the
// credential.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/healthai/pkg/api"
)

// Backend is the slice of the API the store needs for credential
// issuance. *api.Client satisfies it.
type Backend interface {
	Login(ctx context.Context, email, password string) (*api.Credential, error)
	Register(ctx context.Context, email, password, name string) (*api.Credential, error)
}

// Store is a file-backed credential store. The zero state is
// "restoring": Loading reports true until Restore has run once.
//
// Store implements api.TokenSource, so an api.Client constructed over
// it always sees the current credential.
type Store struct {
	path    string
	backend Backend

	mu      sync.RWMutex
	cred    *api.Credential
	loading bool
}

// New creates a Store persisting its credential at path. Bind must be
// called before Login or Register.
func New(path string) *Store {
	return &Store{path: path, loading: true}
}

// Bind attaches the backend used for login and registration. Split from
// New because the api.Client reading tokens from this store has to be
// constructed in between.
func (s *Store) Bind(backend Backend) {
	s.backend = backend
}

// Token implements api.TokenSource. Empty while anonymous or restoring.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return ""
	}
	return s.cred.Token
}

// Loading reports whether the initial restore is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Authenticated reports whether a credential is currently held.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred != nil
}

// Current returns the logged-in user's profile, or false while anonymous.
func (s *Store) Current() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return api.User{}, false
	}
	return s.cred.User, true
}

// Restore loads any durably stored credential and ends the loading
// state regardless of the outcome. It runs once at process start; there
// is no way back to the loading state afterwards. Validity is checked
// implicitly by the first authenticated request, except that a token
// whose JWT expiry has already passed is discarded here without any
// network traffic.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("read stored credential", "path", s.path, "error", err)
		}
		return
	}

	var cred api.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		slog.Warn("discarding corrupt stored credential", "path", s.path, "error", err)
		return
	}
	if cred.Token == "" {
		return
	}
	if expired(cred.Token) {
		slog.Info("stored credential expired, starting anonymous")
		os.Remove(s.path)
		return
	}
	s.cred = &cred
}

// expired reports whether token is a JWT with an exp claim in the past.
// Opaque or malformed tokens are never treated as expired; the backend
// has the final word on those.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Login exchanges credentials for a session. Backend rejections pass
// through unchanged for display; the store stays anonymous on failure.
func (s *Store) Login(ctx context.Context, email, password string) error {
	cred, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.adopt(cred)
}

// Register creates an account and logs it in. A failed registration
// leaves the store anonymous.
func (s *Store) Register(ctx context.Context, email, password, name string) error {
	cred, err := s.backend.Register(ctx, email, password, name)
	if err != nil {
		return err
	}
	return s.adopt(cred)
}

// adopt stores the credential in memory and on disk.
func (s *Store) adopt(cred *api.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(cred); err != nil {
		return err
	}
	s.cred = cred
	s.loading = false
	return nil
}

// Logout clears the credential and its durable copy. It cannot fail: a
// file removal error is logged and the in-memory state is cleared anyway.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("remove stored credential", "path", s.path, "error", err)
	}
}

// Invalidate drops the session in response to the backend rejecting the
// credential. Same effect as Logout.
func (s *Store) Invalidate() {
	slog.Info("credential rejected by backend, logging out")
	s.Logout()
}

// persist writes the credential atomically (temp file + rename).
// Callers hold s.mu.
func (s *Store) persist(cred *api.Credential) error {
	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp credential: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp credential: %w", err)
	}
	return nil
}

var _ api.TokenSource = (*Store)(nil)
