package sidecar

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"tremors-music/internal/dirs"
)

var (
	ErrNotFound            = errors.New("sidecar executable not found")
	ErrUnsupportedPlatform = errors.New("no sidecar target for platform")
)

// Locator finds the executable to spawn.
type Locator interface {
	Resolve() (string, error)
}

// LocatorFunc adapts a function into a Locator.
type LocatorFunc func() (string, error)

func (f LocatorFunc) Resolve() (string, error) { return f() }

var targetTriples = map[string]string{
	"linux/amd64":   "x86_64-unknown-linux-gnu",
	"linux/arm64":   "aarch64-unknown-linux-gnu",
	"darwin/amd64":  "x86_64-apple-darwin",
	"darwin/arm64":  "aarch64-apple-darwin",
	"windows/amd64": "x86_64-pc-windows-msvc",
	"windows/arm64": "aarch64-pc-windows-msvc",
}

// TargetTriple returns the suffix bundled sidecars carry for goos/goarch.
func TargetTriple(goos, goarch string) (string, error) {
	triple, ok := targetTriples[goos+"/"+goarch]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, goos, goarch)
	}
	return triple, nil
}

// Resolver locates a bundled sidecar by name. Inside each directory it
// tries "<name><ext>" and then "<name>-<target-triple><ext>".
type Resolver struct {
	Name string

	// Dirs to search in order. Empty means DefaultDirs.
	Dirs []string

	// GOOS and GOARCH default to the running platform.
	GOOS   string
	GOARCH string
}

var _ Locator = Resolver{}

// DefaultDirs is the directory of the running executable followed by its
// binaries/ subdirectory, which is where development builds keep sidecars.
func DefaultDirs() ([]string, error) {
	exeDir, err := dirs.ExecutableDir()
	if err != nil {
		return nil, fmt.Errorf("locating executable: %w", err)
	}
	return []string{exeDir, filepath.Join(exeDir, "binaries")}, nil
}

// Candidates returns the file names tried in each directory.
func (r Resolver) Candidates() ([]string, error) {
	goos, goarch := r.platform()
	triple, err := TargetTriple(goos, goarch)
	if err != nil {
		return nil, err
	}
	ext := ""
	if goos == "windows" {
		ext = ".exe"
	}
	return []string{r.Name + ext, r.Name + "-" + triple + ext}, nil
}

func (r Resolver) Resolve() (string, error) {
	if r.Name == "" {
		return "", fmt.Errorf("%w: empty sidecar name", ErrNotFound)
	}

	names, err := r.Candidates()
	if err != nil {
		return "", err
	}

	searchDirs := r.Dirs
	if len(searchDirs) == 0 {
		searchDirs, err = DefaultDirs()
		if err != nil {
			return "", err
		}
	}

	var tried []string
	for _, dir := range searchDirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			tried = append(tried, path)
			if isExecutable(path) {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s (searched %s)", ErrNotFound, r.Name, strings.Join(tried, ", "))
}

func (r Resolver) platform() (string, string) {
	goos, goarch := r.GOOS, r.GOARCH
	if goos == "" {
		goos = runtime.GOOS
	}
	if goarch == "" {
		goarch = runtime.GOARCH
	}
	return goos, goarch
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
