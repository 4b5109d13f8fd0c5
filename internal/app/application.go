package app

import (
	"fmt"

	"fyne.io/fyne/v2"

	"tremors-music/internal/config"
	"tremors-music/internal/dirs"
	"tremors-music/internal/eventbus"
	"tremors-music/internal/logger"
	"tremors-music/internal/sidecar"
)

// Options overrides collaborators of the setup hook. Zero values select
// the production wiring.
type Options struct {
	Locator       sidecar.Locator
	Logging       *logger.Options
	InstallLogger func(logger.Options) (*logger.Sink, error)
}

type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	cfg     config.Config

	logger     logger.Logger
	sink       *logger.Sink
	bus        *eventbus.Bus
	supervisor *sidecar.Supervisor
	child      *sidecar.Child
	status     *StatusView
	lifecycle  *Lifecycle
}

// NewApplication runs the startup hook: logging is configured for the
// build profile, then the backend sidecar is spawned and its output
// drained in the background. Any error here is fatal to the shell; in
// that case no window has been shown and nothing is draining.
func NewApplication(fyneApp fyne.App, cfg config.Config, opts Options) (*Application, error) {
	sink, err := installLogger(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("installing logger: %w", err)
	}
	log := sink.Logger

	log.Info("Application", "starting application", map[string]interface{}{
		"version":  cfg.AppVersion,
		"profile":  cfg.Profile.String(),
		"log_file": sink.Path,
	})

	locator := opts.Locator
	if locator == nil {
		locator = sidecar.Resolver{Name: cfg.SidecarName}
	}

	supervisor := sidecar.NewSupervisor(locator, 0)
	events, child, err := supervisor.Spawn()
	if err != nil {
		return nil, fmt.Errorf("spawning backend: %w", err)
	}

	log.Info("Application", "backend spawned", map[string]interface{}{
		"pid":    child.PID(),
		"path":   child.Path(),
		"run_id": supervisor.ID(),
	})

	// The view is attached to its window before any event can reach it.
	status := NewStatusView(cfg.AppName)
	window := fyneApp.NewWindow(cfg.AppName)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()
	window.SetContent(status.Container())

	bus := eventbus.NewBus(cfg.EventBufferSize)
	status.Subscribe(bus)
	bus.Publish(eventbus.Event{
		Type: eventbus.BackendStarted,
		Data: map[string]interface{}{"pid": child.PID()},
	})

	forwarder := sidecar.Forwarder{
		Logger:    log,
		Publisher: bus,
		Fields:    map[string]interface{}{"run_id": supervisor.ID()},
	}
	go forwarder.Drain(events)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		cfg:        cfg,
		logger:     log,
		sink:       sink,
		bus:        bus,
		supervisor: supervisor,
		child:      child,
		status:     status,
	}
	application.lifecycle = NewLifecycle(log, child, bus, func() {
		fyne.Do(fyneApp.Quit)
	})

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func installLogger(cfg config.Config, opts Options) (*logger.Sink, error) {
	logOpts := logger.Options{
		Profile:  cfg.Profile,
		LogDir:   dirs.LogDir(cfg.AppID),
		FileName: cfg.AppName + ".log",
	}
	if opts.Logging != nil {
		logOpts = *opts.Logging
	}

	install := opts.InstallLogger
	if install == nil {
		install = logger.Install
	}
	return install(logOpts)
}

// Run shows the window and blocks in the GUI event loop.
func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.lifecycle.Listen()

	a.window.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	return nil
}

// Shutdown stops the sidecar and the GUI. Safe to call more than once.
func (a *Application) Shutdown() {
	a.lifecycle.Shutdown()
}

func (a *Application) Child() *sidecar.Child { return a.child }

func (a *Application) Status() *StatusView { return a.status }
