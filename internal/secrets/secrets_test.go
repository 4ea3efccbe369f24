// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingDirectory(t *testing.T) {
	creds, err := Load(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, creds.ClientID)
	assert.Empty(t, creds.ClientSecret)
}

func TestLoadTrimsValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spotify-client-id"), []byte("  my-id\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spotify-client-secret"), []byte("my-secret\n\n"), 0o600))

	creds, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "my-id", creds.ClientID)
	assert.Equal(t, "my-secret", creds.ClientSecret)
}

func TestLoadPartial(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spotify-client-id"), []byte("only-id"), 0o600))

	creds, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "only-id", creds.ClientID)
	assert.Empty(t, creds.ClientSecret)
}
