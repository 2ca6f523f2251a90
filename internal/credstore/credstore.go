// Package credstore persists the access/refresh token pair between process
// runs. Presence of an access token at startup is the sole signal that a
// bootstrap validation should be attempted.
package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quillforge/quill/internal/errors"
)

const fileName = "credentials.json"

// Credentials holds the persisted token pair
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email,omitempty"`
}

// Empty reports whether no access token is held
func (c Credentials) Empty() bool {
	return c.AccessToken == ""
}

// AccessTokenExpiry decodes the access token locally (without verifying the
// signature, which is the server's job) and returns its expiry claim.
func (c Credentials) AccessTokenExpiry() (time.Time, bool) {
	if c.AccessToken == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(c.AccessToken, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Store reads and writes credentials. Implementations must be safe for
// concurrent use; the transport and the session store share one instance.
type Store interface {
	// Load returns the stored credentials, or empty credentials if none exist
	Load() (Credentials, error)

	// Save replaces the stored credentials
	Save(creds Credentials) error

	// Clear removes the stored credentials. Clearing an empty store is a no-op.
	Clear() error
}

// FileStore persists credentials as a 0600 JSON file under the quill
// configuration directory.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, fileName)
}

// Load returns the stored credentials, or empty credentials if none exist
func (s *FileStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil
		}
		return Credentials{}, errors.Wrap(errors.ErrCodeCredentialsRead, "could not read credentials", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, errors.Wrap(errors.ErrCodeCredentialsRead, "could not parse credentials", err).
			WithSuggestion("Delete " + s.path() + " and login again")
	}

	return creds, nil
}

// Save replaces the stored credentials
func (s *FileStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeCredentialsWrite, "could not create credentials directory", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCredentialsWrite, "could not encode credentials", err)
	}

	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeCredentialsWrite, "could not write credentials", err)
	}

	return nil
}

// Clear removes the stored credentials
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeCredentialsWrite, "could not remove credentials", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests
type MemoryStore struct {
	mu    sync.Mutex
	creds Credentials
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored credentials
func (s *MemoryStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

// Save replaces the stored credentials
func (s *MemoryStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

// Clear removes the stored credentials
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	return nil
}
