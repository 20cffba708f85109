// Package session holds the bearer token vendorctl sends with every request.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const defaultTokenFile = "token"

// Store persists the token in a file readable only by the current user. A non-empty
// override (VENDORCTL_TOKEN) takes precedence over the file.
type Store struct {
	path     string
	override string
}

// DefaultPath is <user config dir>/vendorctl/token.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "vendorctl", defaultTokenFile), nil
}

// NewStore uses DefaultPath when path is empty.
func NewStore(path, override string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path, override: strings.TrimSpace(override)}, nil
}

func (s *Store) Path() string { return s.path }

// Token returns the stored token. A missing file yields an empty token and no error;
// callers send the request anyway and let the server reject it.
func (s *Store) Token() (string, error) {
	if s.override != "" {
		return s.override, nil
	}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the token file. Clearing an absent token is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
