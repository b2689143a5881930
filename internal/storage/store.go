package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Keys for the persisted session state.
const (
	KeyAuthToken           = "authToken"
	KeyDoctorData          = "doctorData"
	KeyPendingLogin        = "pendingLogin"
	KeyLoginAttempts       = "loginAttempts"
	KeyLastLoginAttempt    = "lastLoginAttempt"
	KeyRecentSearches      = "recentSearches"
	KeyLastTokenValidation = "lastTokenValidation"
)

// Store is a synchronous string key-value store backed by a single JSON file.
// It is the client's only durable state. A corrupt file is treated as empty
// rather than an error.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

func Open(path string) (*Store, error) {
	s := &Store{path: path, data: map[string]string{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.data = map[string]string{}
	}
	return s, nil
}

// Get returns the stored value and whether the key exists.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores the value and persists the file before returning.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

// Remove deletes the key. Removing an absent key is a no-op.
func (s *Store) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return s.flush()
}

// GetJSON decodes the stored value into v.
func (s *Store) GetJSON(key string, v any) error {
	raw, ok := s.Get(key)
	if !ok {
		return fmt.Errorf("key %q not set", key)
	}
	return json.Unmarshal([]byte(raw), v)
}

// SetJSON encodes v and stores it under key.
func (s *Store) SetJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.Set(key, string(raw))
}

// flush writes the whole map atomically via a temp file and rename, so a
// crashed writer never leaves a torn state file. Caller holds the lock.
func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create state dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
