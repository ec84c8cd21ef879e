package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "credentials.json")
	store := NewFileTokenStore(path)

	// Absent file reads as logged out
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("bearer-token"))

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", token)

	// Saving again replaces the previous token
	require.NoError(t, store.Save("rotated-token"))
	token, _ = store.Load()
	assert.Equal(t, "rotated-token", token)
}

func TestFileTokenStore_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileTokenStore(path)
	require.NoError(t, store.Save("secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileTokenStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileTokenStore(path)

	// Clearing an absent token is not an error
	require.NoError(t, store.Clear())

	require.NoError(t, store.Save("tok"))
	require.NoError(t, store.Clear())

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileTokenStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	store := NewFileTokenStore(path)
	_, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION-002")
}
