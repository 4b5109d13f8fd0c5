package app

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"tremors-music/internal/eventbus"
)

func TestStatusViewFollowsBackendEvents(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	bus := eventbus.NewBus(16)
	view := NewStatusView("Tremors Music")
	view.Subscribe(bus)

	assert.Equal(t, "Backend: starting", view.BackendStatus())

	bus.Publish(eventbus.Event{Type: eventbus.BackendStarted, Data: map[string]interface{}{"pid": 42}})
	bus.Publish(eventbus.Event{Type: eventbus.BackendStdout, Data: map[string]interface{}{"line": "ready"}})
	bus.Shutdown()

	assert.Eventually(t, func() bool {
		return view.BackendStatus() == "Backend: running (pid 42)" && view.LastOutput() == "ready"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStatusViewShowsExitAndErrors(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	view := NewStatusView("Tremors Music")

	view.Handle(eventbus.Event{Type: eventbus.BackendError, Data: map[string]interface{}{"error": "pipe broken"}})
	assert.Eventually(t, func() bool {
		return view.BackendStatus() == "Backend: error: pipe broken"
	}, 2*time.Second, 10*time.Millisecond)

	view.Handle(eventbus.Event{Type: eventbus.BackendTerminated, Data: map[string]interface{}{"exit_code": "unknown"}})
	assert.Eventually(t, func() bool {
		return view.BackendStatus() == "Backend: exited (code unknown)"
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, statusViewID, view.GetID())
	assert.NotNil(t, view.Container())
}

func TestStatusViewReadableWhileEventsArrive(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	view := NewStatusView("Tremors Music")
	window := fyneApp.NewWindow("status")
	window.SetContent(view.Container())
	defer window.Close()

	bus := eventbus.NewBus(256)
	view.Subscribe(bus)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = view.BackendStatus()
			_ = view.LastOutput()
		}
	}()

	for i := 0; i < 100; i++ {
		bus.Publish(eventbus.Event{Type: eventbus.BackendStdout, Data: map[string]interface{}{"line": fmt.Sprint("line ", i)}})
	}
	bus.Publish(eventbus.Event{Type: eventbus.BackendTerminated, Data: map[string]interface{}{"exit_code": 0}})
	bus.Shutdown()
	wg.Wait()

	assert.Equal(t, "line 99", view.LastOutput())
	assert.Equal(t, "Backend: exited (code 0)", view.BackendStatus())
}
