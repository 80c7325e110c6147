package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "keystore.json"))

	key, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, "", key)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.json")
	store := NewFileStore(path)

	assert.NoError(t, store.Save("X"))

	key, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, "X", key)

	// A fresh store over the same file sees the value (simulated restart)
	restarted := NewFileStore(path)
	key, err = restarted.Load()
	assert.NoError(t, err)
	assert.Equal(t, "X", key)
}

func TestFileStore_LastWriterWins(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "keystore.json"))

	assert.NoError(t, store.Save("first"))
	assert.NoError(t, store.Save("second"))

	key, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, "second", key)
}

func TestFileStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "keystore.json")
	store := NewFileStore(path)

	assert.NoError(t, store.Save("key"))

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.json")
	assert.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	key, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, "", key)

	assert.NoError(t, store.Save("abc"))

	key, err = store.Load()
	assert.NoError(t, err)
	assert.Equal(t, "abc", key)
}
