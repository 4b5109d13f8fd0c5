package app

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"tremors-music/internal/eventbus"
)

const statusViewID = "status-view"

// StatusView shows the state of the backend sidecar. Label text is only
// touched on the UI thread; readers get the copy kept under mu.
type StatusView struct {
	container    *fyne.Container
	titleLabel   *widget.Label
	backendLabel *widget.Label
	outputLabel  *widget.Label

	mu         sync.Mutex
	backend    string
	lastOutput string
}

func NewStatusView(appName string) *StatusView {
	sv := &StatusView{}
	sv.createComponents(appName)
	sv.buildLayout()
	return sv
}

func (sv *StatusView) createComponents(appName string) {
	sv.titleLabel = widget.NewLabelWithStyle(appName, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	sv.backend = "Backend: starting"
	sv.backendLabel = widget.NewLabel(sv.backend)
	sv.outputLabel = widget.NewLabel("")
	sv.outputLabel.Truncation = fyne.TextTruncateEllipsis
}

func (sv *StatusView) buildLayout() {
	sv.container = container.NewVBox(
		sv.titleLabel,
		widget.NewSeparator(),
		sv.backendLabel,
		sv.outputLabel,
	)
}

// Subscribe registers the view for every backend event type.
func (sv *StatusView) Subscribe(bus *eventbus.Bus) {
	for _, t := range []string{
		eventbus.BackendStarted,
		eventbus.BackendStdout,
		eventbus.BackendStderr,
		eventbus.BackendError,
		eventbus.BackendTerminated,
	} {
		bus.Subscribe(t, sv)
	}
}

func (sv *StatusView) GetID() string {
	return statusViewID
}

func (sv *StatusView) Handle(event eventbus.Event) {
	switch event.Type {
	case eventbus.BackendStarted:
		sv.setBackend(fmt.Sprintf("Backend: running (pid %v)", event.Data["pid"]))
	case eventbus.BackendStdout, eventbus.BackendStderr:
		sv.setOutput(fmt.Sprint(event.Data["line"]))
	case eventbus.BackendError:
		sv.setBackend(fmt.Sprintf("Backend: error: %v", event.Data["error"]))
	case eventbus.BackendTerminated:
		sv.setBackend(fmt.Sprintf("Backend: exited (code %v)", event.Data["exit_code"]))
	}
}

func (sv *StatusView) setBackend(text string) {
	sv.mu.Lock()
	sv.backend = text
	sv.mu.Unlock()

	fyne.Do(func() {
		sv.backendLabel.SetText(text)
	})
}

func (sv *StatusView) setOutput(text string) {
	sv.mu.Lock()
	sv.lastOutput = text
	sv.mu.Unlock()

	fyne.Do(func() {
		sv.outputLabel.SetText(text)
	})
}

// BackendStatus returns the backend line currently shown.
func (sv *StatusView) BackendStatus() string {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.backend
}

// LastOutput returns the most recent backend output line shown.
func (sv *StatusView) LastOutput() string {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.lastOutput
}

func (sv *StatusView) Container() *fyne.Container {
	return sv.container
}
