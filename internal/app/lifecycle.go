package app

import (
	"time"

	"tremors-music/internal/eventbus"
	"tremors-music/internal/logger"
	"tremors-music/internal/shutdown"
	"tremors-music/internal/sidecar"
)

const (
	sidecarExitWait = 5 * time.Second

	// Longer than sidecarExitWait so the sidecar step reports its own timeout.
	shutdownStepTimeout = sidecarExitWait + time.Second
)

// Lifecycle tears the shell down in reverse dependency order:
// sidecar, event bus, GUI. The log sink stays open until the process
// exits so the backend's termination is still recorded.
type Lifecycle struct {
	manager *shutdown.Manager
	logger  logger.Logger
}

func NewLifecycle(log logger.Logger, child *sidecar.Child, bus *eventbus.Bus, quit func()) *Lifecycle {
	m := shutdown.NewManager(log)
	m.SetStepTimeout(shutdownStepTimeout)

	m.Register("gui", shutdown.Func(quit))
	m.Register("event bus", bus)
	m.Register("sidecar", shutdown.Func(func() {
		if err := child.Kill(); err != nil {
			log.Error("Lifecycle", "killing backend failed", err, map[string]interface{}{
				"pid": child.PID(),
			})
			return
		}
		select {
		case <-child.Done():
		case <-time.After(sidecarExitWait):
			log.Warning("Lifecycle", "backend did not exit in time", map[string]interface{}{
				"pid": child.PID(),
			})
		}
	}))

	return &Lifecycle{manager: m, logger: log}
}

// Listen shuts down on SIGINT/SIGTERM.
func (l *Lifecycle) Listen() {
	l.manager.Listen()
}

func (l *Lifecycle) Shutdown() {
	l.manager.Shutdown()
}
