package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store persists the raw vocabulary document between runs
type Store interface {
	// Get returns the cached copy or ErrCacheMiss
	Get(ctx context.Context) (*Entry, error)
	// Put replaces the cached copy
	Put(ctx context.Context, data []byte, fetchedAt time.Time) error
}

// FileStore keeps the vocabulary as a single file whose modification
// time records when it was fetched.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the cache file location
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, CacheFileName)
}

// Get reads the cache file
func (s *FileStore) Get(ctx context.Context) (*Entry, error) {
	path := s.Path()

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCacheMiss
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat cache file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	return &Entry{Data: data, FetchedAt: info.ModTime()}, nil
}

// Put writes the cache file through a temporary file so a concurrent
// reader never sees a partial document.
func (s *FileStore) Put(ctx context.Context, data []byte, fetchedAt time.Time) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, CacheFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Chtimes(tmpName, fetchedAt, fetchedAt); err != nil {
		return fmt.Errorf("failed to set cache timestamp: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}
