// Package file implements single-slot blob storage on the local filesystem.
package file

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"

	"github.com/xenking/appetizers/internal/profile"
)

var _ profile.Storage = (*Store)(nil)

// Store persists one blob at a fixed path. Writes go through a temporary
// file and rename, so readers never observe a partial blob.
type Store struct {
	path string
}

// New returns a Store for the given path. Parent directories are created on
// first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Read returns the stored blob, or (nil, nil) when nothing has been stored.
func (s *Store) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", s.path)
	}
	return data, nil
}

// Write overwrites the stored blob atomically.
func (s *Store) Write(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "create storage dir")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrapf(err, "write %q", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrapf(err, "rename to %q", s.path)
	}
	return nil
}
