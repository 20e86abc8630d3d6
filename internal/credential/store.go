// Package credential persists the bearer token that marks the client as
// authenticated. The token is the only durable state this client keeps.
package credential

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/set-night/zeno/internal/config"
)

// Store holds the session credential in memory and mirrors it to a single
// file on disk so authentication survives restarts. The zero token means
// unauthenticated. Writes only happen from explicit user actions (login,
// logout, account deletion), so a mutex is enough.
type Store struct {
	mu    sync.RWMutex
	path  string
	token string
}

// DefaultPath returns the token file location inside the per-user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, config.AppDirName, config.TokenFileName), nil
}

// Open reads the token file at path, if present, and returns a store seeded
// with it. A missing file is the normal unauthenticated state, not an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}

	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// Token returns the current credential, empty when unauthenticated.
// Satisfies api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Save sets the credential and writes it durably.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}

	s.token = token
	return nil
}

// Clear drops the credential from memory and disk. Clearing an already
// empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}

	s.token = ""
	return nil
}
