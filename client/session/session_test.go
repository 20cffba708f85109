package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMissingFileIsEmptyToken(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "token"), "")
	require.NoError(t, err)

	token, err := s.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestStoreSaveTokenClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s, err := NewStore(path, "")
	require.NoError(t, err)

	require.NoError(t, s.Save("abc.def.ghi"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	token, err = s.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestStoreOverrideWins(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "token"), "  from-env ")
	require.NoError(t, err)
	require.NoError(t, s.Save("from-file"))

	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "from-env", token)
}
