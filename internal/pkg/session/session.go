package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"roomstay-admin/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the persisted login state: who the caller is upstream and
// the bearer token attached to authenticated calls.
type Identity struct {
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccessToken string `json:"accessToken"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == "ADMIN"
}

// Provider exposes the current login state to the upstream client and
// the mutation coordinator. Implementations must be safe for concurrent
// use.
type Provider interface {
	Current(ctx context.Context) (Identity, error)
	Save(ctx context.Context, id Identity) error
	Clear(ctx context.Context) error
}

// FileProvider persists the identity as a single JSON file, the
// counterpart of the browser build's localStorage "user" entry.
type FileProvider struct {
	path string

	mu     sync.RWMutex
	cached *Identity
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Current(_ context.Context) (Identity, error) {
	p.mu.RLock()
	cached := p.cached
	p.mu.RUnlock()

	if cached == nil {
		loaded, err := p.load()
		if err != nil {
			return Identity{}, err
		}
		p.mu.Lock()
		p.cached = loaded
		p.mu.Unlock()
		cached = loaded
	}

	if expired(cached.AccessToken) {
		return Identity{}, errs.ErrSessionExpired
	}
	return *cached, nil
}

func (p *FileProvider) Save(_ context.Context, id Identity) error {
	raw, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return errs.Wrap(err, "failed to encode session state")
	}
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errs.Wrap(err, "failed to create session state dir")
		}
	}
	if err := os.WriteFile(p.path, raw, 0o600); err != nil {
		return errs.Wrap(err, "failed to write session state")
	}

	p.mu.Lock()
	p.cached = &id
	p.mu.Unlock()
	return nil
}

func (p *FileProvider) Clear(_ context.Context) error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(err, "failed to remove session state")
	}
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()
	return nil
}

func (p *FileProvider) load() (*Identity, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.ErrNotLoggedIn
		}
		return nil, errs.Wrap(err, "failed to read session state")
	}

	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		// A corrupt state file behaves like a logged-out session.
		return nil, errs.ErrNotLoggedIn
	}
	if id.AccessToken == "" {
		return nil, errs.ErrNotLoggedIn
	}
	return &id, nil
}

// expired inspects the token's exp claim without verifying the
// signature: the upstream owns the signing key, we only fail fast
// instead of sending a call that will bounce with a 401.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		// Opaque tokens are passed through as-is.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// StaticProvider returns a fixed identity, for tests and tooling.
type StaticProvider struct {
	ID Identity
}

func (s *StaticProvider) Current(context.Context) (Identity, error) {
	if s.ID.AccessToken == "" {
		return Identity{}, errs.ErrNotLoggedIn
	}
	return s.ID, nil
}

func (s *StaticProvider) Save(_ context.Context, id Identity) error {
	s.ID = id
	return nil
}

func (s *StaticProvider) Clear(context.Context) error {
	s.ID = Identity{}
	return nil
}
