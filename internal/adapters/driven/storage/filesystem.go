// Package storage holds the highlight cache and the source document fetcher.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Ensure FileStore implements HighlightStore
var _ driven.HighlightStore = (*FileStore)(nil)

const fileExt = ".pdf"

// FileStore keeps rendered copies in a directory, one file per cache key.
// Writes go to a temp file that is renamed into place, so readers never see
// a partial copy.
type FileStore struct {
	dir       string
	urlPrefix string
}

// NewFileStore creates the directory if needed. urlPrefix is prepended to
// file names when building public URLs.
func NewFileStore(dir, urlPrefix string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create highlight dir: %w", err)
	}
	return &FileStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Exists reports whether a copy is stored under key
func (s *FileStore) Exists(_ context.Context, key string) (bool, error) {
	path, err := s.path(key + fileExt)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Save writes the copy produced by write under key
func (s *FileStore) Save(ctx context.Context, key string, write func(w io.Writer) error) error {
	path, err := s.path(key + fileExt)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".render-*"+fileExt)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publish highlight: %w", err)
	}
	return nil
}

// Open returns a reader for a stored file
func (s *FileStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	return f, err
}

// URL returns the public URL of the copy stored under key
func (s *FileStore) URL(key string) string {
	return s.urlPrefix + "/" + key + fileExt
}

// path resolves a file name inside the store directory.
func (s *FileStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: bad file name %q", domain.ErrInvalidInput, name)
	}
	return filepath.Join(s.dir, name), nil
}
