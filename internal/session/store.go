// Package session persists the operator's API credential between runs.
// The credential is an opaque bearer token; there is no expiry or refresh
// handling — the server rejecting it surfaces as a normal request error.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store keeps one opaque token in a file. Safe for concurrent use; the UI
// event loop and request goroutines may both consult it.
type Store struct {
	mu    sync.RWMutex
	path  string
	token string
}

// Open loads the token at path if one was saved by a previous run. A
// missing or unreadable file just means "not authenticated".
func Open(path string) *Store {
	s := &Store{path: path}
	if data, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(data))
	}
	return s
}

// Token returns the current credential, if any.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// IsAuthenticated reports whether a credential is present. Presence is
// trust: validity is only decided by the server.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// SetToken stores the credential in memory and on disk (0600).
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		return fmt.Errorf("refusing to store an empty token")
	}
	s.token = token

	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// Clear removes the credential from memory and disk. Logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
