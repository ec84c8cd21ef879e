package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/staffdeck/staffdeck/internal/errors"
)

// TokenStore persists the bearer token between runs. Absence of a stored
// token means logged out.
type TokenStore interface {
	// Load returns the persisted token, or empty when none is stored
	Load() (string, error)
	// Save persists the token, replacing any previous one
	Save(token string) error
	// Clear removes the persisted token; clearing an absent token is not
	// an error
	Clear() error
}

// credentials is the on-disk shape of the persisted token
type credentials struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"savedAt"`
}

// FileTokenStore stores the token as a JSON file with owner-only
// permissions.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a token store backed by the given file path
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load implements TokenStore
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeCredentialsReadFailed, "failed to read credentials file", err)
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", errors.Wrap(errors.ErrCodeCredentialsReadFailed, "failed to parse credentials file", err).
			WithSuggestion("Delete the credentials file and log in again")
	}

	return creds.Token, nil
}

// Save implements TokenStore
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeCredentialsSaveFailed, "failed to create credentials directory", err)
	}

	data, err := json.MarshalIndent(credentials{Token: token, SavedAt: time.Now()}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCredentialsSaveFailed, "failed to encode credentials", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeCredentialsSaveFailed, "failed to write credentials file", err)
	}
	return nil
}

// Clear implements TokenStore
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeCredentialsSaveFailed, "failed to remove credentials file", err)
	}
	return nil
}

// MemoryTokenStore keeps the token in memory, for tests
type MemoryTokenStore struct {
	token string
}

// NewMemoryTokenStore creates a memory-backed token store, optionally
// pre-seeded with a token
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Load() (string, error) { return s.token, nil }
func (s *MemoryTokenStore) Save(token string) error {
	s.token = token
	return nil
}
func (s *MemoryTokenStore) Clear() error {
	s.token = ""
	return nil
}
