package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore implements a file-based store for CLI usage.
//
// Each entry is a file holding the raw response body; the file modification
// time is the entry's write time. Writes go to a temporary file that is
// renamed into place, so readers never observe a partially written body.
// Concurrent writers to the same key resolve as last-writer-wins.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the entries.
func (s *FileStore) Dir() string { return s.dir }

// Get retrieves an entry from the store.
func (s *FileStore) Get(ctx context.Context, key string) (*Entry, error) {
	path := s.path(key)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Entry{Data: data, StoredAt: info.ModTime()}, nil
}

// Set stores data under key.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Delete removes an entry from the store.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry and the empty subdirectories left behind.
// It returns the number of entries removed. Only files laid out by the store
// are touched, so a shared directory keeps everything else.
func (s *FileStore) Clear() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	count := 0
	for _, sub := range entries {
		if !sub.IsDir() || !isShard(sub.Name()) {
			continue
		}
		subdir := filepath.Join(s.dir, sub.Name())
		files, err := os.ReadDir(subdir)
		if err != nil {
			continue // Skip unreadable directories
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			name := f.Name()
			entry := strings.HasSuffix(name, ".json")
			if !entry && !strings.HasSuffix(name, ".tmp") {
				continue
			}
			if err := os.Remove(filepath.Join(subdir, name)); err == nil && entry {
				count++
			}
		}
		_ = os.Remove(subdir) // fails while foreign files remain
	}
	return count, nil
}

// isShard reports whether name is a two-hex-digit entry directory.
func isShard(name string) bool {
	if len(name) != 2 {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// Close does nothing for file store.
func (s *FileStore) Close() error {
	return nil
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	// Use first 2 chars as subdirectory for distribution
	subdir := hash[:2]
	filename := hash[2:] + ".json"
	return filepath.Join(s.dir, subdir, filename)
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
