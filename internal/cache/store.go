package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is a flat key-value store for fetched price data. Entries never
// expire: once written, a key is served as-is until a caller removes it
// explicitly with Delete.
type Store interface {
	// Get returns the stored bytes and whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Put stores the bytes under key, replacing any existing entry.
	Put(key string, data []byte) error

	// Delete removes the entry for key if present.
	Delete(key string) error
}

// FileStore keeps one file per key under a root directory.
type FileStore struct {
	root string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.root, key)
}

// Get reads the file for key. A missing file is not an error.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache entry %s: %w", key, err)
	}
	return data, true, nil
}

// Put writes the file for key, creating the root directory on first use.
func (s *FileStore) Put(key string, data []byte) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key. Deleting a missing key is a no-op.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cache entry %s: %w", key, err)
	}
	return nil
}
