// Package dirs resolves per-platform directories for the desktop shell.
// It follows XDG base directories on Linux and the native conventions on
// macOS and Windows, with a temp-dir fallback when no home is known.
package dirs

import (
	"os"
	"path/filepath"
	"runtime"
)

// LogDir returns the directory log files are written to.
// Priority on Linux/BSD: $XDG_DATA_HOME/<appID>/logs > ~/.local/share/<appID>/logs.
// macOS: ~/Library/Logs/<appID>. Windows: %LOCALAPPDATA%\<appID>\logs.
func LogDir(appID string) string {
	return logDir(runtime.GOOS, appID)
}

func logDir(goos, appID string) string {
	switch goos {
	case "darwin":
		if home := homeDir(); home != "" {
			return filepath.Join(home, "Library", "Logs", appID)
		}
	case "windows":
		if base := os.Getenv("LOCALAPPDATA"); base != "" {
			return filepath.Join(base, appID, "logs")
		}
		if home := homeDir(); home != "" {
			return filepath.Join(home, "AppData", "Local", appID, "logs")
		}
	default:
		if base := os.Getenv("XDG_DATA_HOME"); base != "" {
			return filepath.Join(base, appID, "logs")
		}
		if home := homeDir(); home != "" {
			return filepath.Join(home, ".local", "share", appID, "logs")
		}
	}
	return filepath.Join(os.TempDir(), appID+"-logs")
}

// ExecutableDir returns the directory containing the running binary,
// with symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return ""
}
