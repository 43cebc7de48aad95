package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const fileName = "session.toml"

// FileStore keeps the session keys in a small TOML file. It suits machines
// where a lock-holding database file is unwelcome.
type FileStore struct {
	path string
}

var _ Storage = (*FileStore)(nil)

type fileRecord struct {
	AdminToken      string `toml:"adminToken,omitempty"`
	IsAuthenticated string `toml:"isAuthenticated,omitempty"`
	UserRole        string `toml:"userRole,omitempty"`
}

// NewFileStore returns a store backed by the TOML file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the file. A missing file is an anonymous session.
func (f *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var rec fileRecord
	if err := toml.Unmarshal(data, &rec); err != nil {
		return Session{}, fmt.Errorf("parse session: %w", err)
	}
	return decode(map[string]string{
		KeyAuthToken:       rec.AdminToken,
		KeyIsAuthenticated: rec.IsAuthenticated,
		KeyUserRole:        rec.UserRole,
	}), nil
}

// Save rewrites the file, creating directories as needed.
func (f *FileStore) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	values := encode(s)
	data, err := toml.Marshal(fileRecord{
		AdminToken:      values[KeyAuthToken],
		IsAuthenticated: values[KeyIsAuthenticated],
		UserRole:        values[KeyUserRole],
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the file. Clearing an absent file succeeds.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open.
func (f *FileStore) Close() error { return nil }

func filePath(dir string) string {
	return filepath.Join(dir, fileName)
}
