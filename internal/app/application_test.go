package app

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tremors-music/internal/config"
	"tremors-music/internal/logger"
	"tremors-music/internal/sidecar"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func selfBackend(t *testing.T, mode string) sidecar.Locator {
	t.Helper()
	t.Setenv(fakeBackendEnv, mode)
	return sidecar.LocatorFunc(os.Executable)
}

func bufferedLogger(out *syncBuffer) func(logger.Options) (*logger.Sink, error) {
	return func(logger.Options) (*logger.Sink, error) {
		return &logger.Sink{Logger: logger.NewZerolog(out, zerolog.InfoLevel), Installed: true}, nil
	}
}

func TestNewApplicationForwardsBackendOutput(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	var out syncBuffer
	application, err := NewApplication(fyneApp, config.Default(), Options{
		Locator:       selfBackend(t, "ready"),
		InstallLogger: bufferedLogger(&out),
	})
	require.NoError(t, err)
	defer application.Shutdown()

	select {
	case <-application.Child().Done():
	case <-time.After(10 * time.Second):
		t.Fatal("backend did not exit")
	}

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[Backend] Process terminated with code: 0")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "[Backend] Tremors Music Backend is Ready")
	assert.Contains(t, out.String(), `"run_id"`)

	assert.Eventually(t, func() bool {
		return application.Status().BackendStatus() == "Backend: exited (code 0)"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestNewApplicationFailsWithoutBackend(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	var out syncBuffer
	application, err := NewApplication(fyneApp, config.Default(), Options{
		Locator:       sidecar.Resolver{Name: config.SidecarName, Dirs: []string{t.TempDir()}},
		InstallLogger: bufferedLogger(&out),
	})

	require.ErrorIs(t, err, sidecar.ErrNotFound)
	assert.Nil(t, application)
	assert.NotContains(t, out.String(), "[Backend]")
}

func TestNewApplicationFailsWhenLoggerCannotInstall(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	installErr := errors.New("log dir is read-only")
	var got logger.Options
	spawned := false

	_, err := NewApplication(fyneApp, config.Default(), Options{
		Locator: sidecar.LocatorFunc(func() (string, error) {
			spawned = true
			return os.Executable()
		}),
		Logging: &logger.Options{Profile: config.Development, LogDir: t.TempDir()},
		InstallLogger: func(opts logger.Options) (*logger.Sink, error) {
			got = opts
			return nil, installErr
		},
	})

	require.ErrorIs(t, err, installErr)
	assert.False(t, spawned)
	assert.Equal(t, config.Development, got.Profile)
}

func TestShutdownKillsBackend(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	var out syncBuffer
	application, err := NewApplication(fyneApp, config.Default(), Options{
		Locator:       selfBackend(t, "serve"),
		InstallLogger: bufferedLogger(&out),
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Uvicorn running")
	}, 10*time.Second, 10*time.Millisecond)

	application.Shutdown()
	application.Shutdown()

	select {
	case <-application.Child().Done():
	case <-time.After(10 * time.Second):
		t.Fatal("backend still running after shutdown")
	}
	require.NotNil(t, application.Child().Exit())
}
