package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get(KeyHosts)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyHosts, "[]"))
	v, ok, err := s.Get(KeyHosts)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s := NewFileStore(path)
	require.NoError(t, s.Set(KeySamplesStart, "2024-01-01"))
	require.NoError(t, s.Set(KeySamplesEnd, "2024-01-02"))
	assert.FileExists(t, path)

	reopened := NewFileStore(path)
	v, ok, err := reopened.Get(KeySamplesStart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2024-01-01", v)

	v, _, _ = reopened.Get(KeySamplesEnd)
	assert.Equal(t, "2024-01-02", v)
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	_, ok, err := s.Get(KeyHosts)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewFileStore(path)
	_, _, err := s.Get(KeyHosts)
	require.Error(t, err)

	// Writing replaces the corrupt file
	require.NoError(t, s.Set(KeyHosts, "[]"))
	v, ok, err := NewFileStore(path).Get(KeyHosts)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "state.json"))
	require.NoError(t, s.Set(KeyHosts, "[]"))
	require.NoError(t, s.Set(KeyHosts, `[{"hostName":"h1","category":null}]`))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
	assert.Equal(t, filepath.Join(dir, "state.json"), s.Path())
}
