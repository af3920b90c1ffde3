// Package store provides the credential store implementations: a per-user
// file for normal installs and a Redis-backed variant for shared terminals.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

const (
	credentialsDir  = "planta"
	credentialsFile = "credentials.json"
)

// credentialsRecord is the on-disk shape. Writing the whole record at once
// keeps the token and the user snapshot together: they can never be updated
// independently.
type credentialsRecord struct {
	AuthToken string       `json:"auth_token"`
	UserData  *domain.User `json:"user_data"`
}

// FileStore keeps the session credential in a 0600 JSON file under the user
// config directory. Read and clear failures are reported but callers treat
// storage as best-effort.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore builds a FileStore at path. When path is empty the default
// location under os.UserConfigDir is used.
func NewFileStore(path string, log zerolog.Logger) (*FileStore, error) {
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		path = filepath.Join(base, credentialsDir, credentialsFile)
	}
	return &FileStore{path: path, log: log}, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Token(_ context.Context) (string, error) {
	rec, err := s.read()
	if err != nil {
		return "", err
	}
	return rec.AuthToken, nil
}

func (s *FileStore) UserSnapshot(_ context.Context) (*domain.User, error) {
	rec, err := s.read()
	if err != nil {
		return nil, err
	}
	return rec.UserData, nil
}

func (s *FileStore) SetCredentials(_ context.Context, token string, user *domain.User) error {
	raw, err := json.MarshalIndent(credentialsRecord{AuthToken: token, UserData: user}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating credentials dir: %w", err)
	}

	// Write-then-rename so a crash mid-write never leaves a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing credentials: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}

// read loads the record, treating a missing or corrupt file as empty. A
// corrupt file is logged once here; the session layer resolves the empty
// result as "logged out".
func (s *FileStore) read() (credentialsRecord, error) {
	var rec credentialsRecord

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return rec, nil
	}
	if err != nil {
		return rec, fmt.Errorf("reading credentials: %w", err)
	}

	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.Warn().Str("path", s.path).Err(err).Msg("credentials file corrupt, ignoring")
		return credentialsRecord{}, nil
	}
	return rec, nil
}
