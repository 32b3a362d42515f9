package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Account is the stored provider credential. A single account is kept at a
// time: saving replaces whatever was stored before.
type Account struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"savedAt"`
}

// ErrNoAccount is returned when no account has been saved yet.
var ErrNoAccount = errors.New("backend: no account saved")

// CredentialStore persists the provider account to disk.
type CredentialStore struct {
	path string
	mu   sync.Mutex
}

// NewCredentialStore opens the store at dir/accounts.json, creating the
// directory if needed. Pass "" to use the default user config location.
func NewCredentialStore(dir string) (*CredentialStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("backend: resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "quantum-gates")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("backend: create config dir: %w", err)
	}
	return &CredentialStore{path: filepath.Join(dir, "accounts.json")}, nil
}

// SaveAccount replaces the stored account with one holding the given token.
func (s *CredentialStore) SaveAccount(token string) error {
	if token == "" {
		return errors.New("backend: empty token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(Account{Token: token, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("backend: marshal account: %w", err)
	}
	// Write-then-rename so a crash never leaves a truncated credential file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("backend: write account: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// LoadAccount returns the stored account.
func (s *CredentialStore) LoadAccount() (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoAccount
		}
		return nil, fmt.Errorf("backend: read account: %w", err)
	}
	var acct Account
	if err := json.Unmarshal(data, &acct); err != nil {
		return nil, fmt.Errorf("backend: parse account: %w", err)
	}
	if acct.Token == "" {
		return nil, ErrNoAccount
	}
	return &acct, nil
}

// DeleteAccount removes the stored account. Deleting a missing account is
// not an error.
func (s *CredentialStore) DeleteAccount() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("backend: delete account: %w", err)
	}
	return nil
}
