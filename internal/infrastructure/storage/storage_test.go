package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeboard/core/internal/infrastructure/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(config.StorageConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGet_MissingKey(t *testing.T) {
	s := newTestStore(t)

	value, ok, err := s.Get("dashboard-store")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	blob := []byte(`{"city":"London"}`)
	require.NoError(t, s.Put("dashboard-store", blob))

	value, ok, err := s.Get("dashboard-store")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, blob, value)
}

func TestPut_OverwritesPreviousValue(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("k", []byte("first")))
	require.NoError(t, s.Put("k", []byte("second")))

	value, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("second"), value)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("k", []byte("v")))
	require.NoError(t, s.Delete("k"))

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Delete("k"), "deleting an absent key is not an error")
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := New(config.StorageConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Put("k", []byte("durable")))
	require.NoError(t, s.Close())

	s, err = New(config.StorageConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()

	value, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("durable"), value)
}

func TestHealthCheck(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.HealthCheck())

	info := s.GetConnectionInfo()
	assert.Contains(t, info, "path")
	assert.Contains(t, info, "open_connections")
}
