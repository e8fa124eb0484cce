package utils

import (
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePath(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "release.keystore")

	assert.Equal(t, abs, ResolvePath(base, abs))
	assert.Equal(t, filepath.Join(base, "release.keystore"), ResolvePath(base, "release.keystore"))
	assert.Equal(t, filepath.Join(base, "keys", "k.jks"), ResolvePath(base, "keys/k.jks"))

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "k.jks"), ResolvePath(base, "~/k.jks"))
}

func TestFileChecks(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.apk")
	require.NoError(t, os.WriteFile(f, nil, 0o600))

	assert.True(t, Exists(f))
	assert.True(t, IsFile(f))
	assert.False(t, IsDirectory(f))
	assert.True(t, IsDirectory(dir))
	assert.False(t, Exists(filepath.Join(dir, "missing")))
}
