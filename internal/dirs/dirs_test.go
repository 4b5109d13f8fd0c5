package dirs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogDirLinuxPrefersXDGDataHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	assert.Equal(t, filepath.Join(base, "com.example", "logs"), logDir("linux", "com.example"))
}

func TestLogDirLinuxFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".local", "share", "com.example", "logs"), logDir("linux", "com.example"))
}

func TestLogDirDarwin(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "Library", "Logs", "com.example"), logDir("darwin", "com.example"))
}

func TestLogDirWindowsUsesLocalAppData(t *testing.T) {
	base := t.TempDir()
	t.Setenv("LOCALAPPDATA", base)

	assert.Equal(t, filepath.Join(base, "com.example", "logs"), logDir("windows", "com.example"))
}

func TestExecutableDir(t *testing.T) {
	dir, err := ExecutableDir()
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
