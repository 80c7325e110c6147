package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the user-supplied API credential between restarts.
// Load returns an empty string when no credential was saved yet.
type Store interface {
	Load() (string, error)
	Save(key string) error
}

// fileRecord is the on-disk shape, a single fixed slot
type fileRecord struct {
	APIKey string `json:"api_key"`
}

// FileStore is a write-through credential store backed by a small JSON
// file, the service-side analog of the browser's local storage slot.
// Writes are last-writer-wins.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store at the given path.
// The file is created lazily on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read keystore: %w", err)
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("failed to parse keystore: %w", err)
	}
	return rec.APIKey, nil
}

func (s *FileStore) Save(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create keystore directory: %w", err)
		}
	}

	data, err := json.Marshal(fileRecord{APIKey: key})
	if err != nil {
		return fmt.Errorf("failed to marshal keystore: %w", err)
	}

	// The credential is stored as-is; restrict the file to the owner.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write keystore: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, nil
}

func (s *MemoryStore) Save(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = key
	return nil
}
