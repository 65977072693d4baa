package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjo163/pairlink/config"
)

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(config.StorageConfig{Dir: dir, BaseURL: "/uploads/"})
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "messages/42/1.jpg", "image/jpeg", []byte("fake-jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/messages/42/1.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "messages", "42", "1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg", string(data))
}

func TestNewSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	store, err := New(config.StorageConfig{Type: "local", Dir: dir})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	// Empty type defaults to local.
	store, err = New(config.StorageConfig{Dir: dir})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}
