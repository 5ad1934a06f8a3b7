// Package testutil provides utilities for testing rc file handling in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// SetupTestEnv points HOME at a fresh temp directory and clears the
// variables that relocate rc files, so tests never touch the real
// user's shell configuration. It returns the temp home.
//
// The cleanup is automatically handled by t.TempDir() and t.Setenv().
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	home := filepath.Join(t.TempDir(), "home")
	require.NoError(t, os.MkdirAll(home, 0o750), "create test home")

	t.Setenv("HOME", home)
	UnsetEnv(t, "ZDOTDIR")
	UnsetEnv(t, "XDG_CONFIG_HOME")

	return home
}

// UnsetEnv unsets key for the duration of the test.
func UnsetEnv(t *testing.T, key string) {
	t.Helper()

	// t.Setenv records the old value for restoration
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

// MemFS returns an in-memory filesystem seeded with files (path -> content).
func MemFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755), "create %s", filepath.Dir(path))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644), "write %s", path)
	}
	return fs
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err, "read %s", path)
	return string(content)
}
