package sidecar

import (
	"fmt"
	"maps"
	"strconv"

	"tremors-music/internal/eventbus"
	"tremors-music/internal/logger"
)

const (
	component = "sidecar"

	logPrefix      = "[Backend]"
	errorLogPrefix = "[Backend Error]"
)

// Publisher receives a copy of every forwarded event.
type Publisher interface {
	Publish(event eventbus.Event)
}

// Forwarder relays sidecar events into the logger.
type Forwarder struct {
	Logger    logger.Logger
	Publisher Publisher

	// Fields are attached to every log entry.
	Fields map[string]interface{}
}

// Drain forwards events until the channel is closed. It is meant to run
// on its own goroutine for the lifetime of the application.
func (f Forwarder) Drain(events <-chan Event) {
	for event := range events {
		f.Forward(event)
	}
}

// Forward logs a single event. Kinds it does not know are ignored.
func (f Forwarder) Forward(event Event) {
	log := f.Logger
	if log == nil {
		log = logger.Default()
	}

	switch ev := event.(type) {
	case Stdout:
		line := decodeLossy(ev.Line)
		log.Info(component, logPrefix+" "+line, f.fields(nil))
		f.publish(eventbus.BackendStdout, map[string]interface{}{"line": line})

	case Stderr:
		line := decodeLossy(ev.Line)
		log.Warning(component, logPrefix+" "+line, f.fields(nil))
		f.publish(eventbus.BackendStderr, map[string]interface{}{"line": line})

	case Error:
		log.Error(component, fmt.Sprintf("%s %v", errorLogPrefix, ev.Err), ev.Err, f.fields(nil))
		f.publish(eventbus.BackendError, map[string]interface{}{"error": fmt.Sprint(ev.Err)})

	case Terminated:
		code := FormatCode(ev.Code)
		extra := map[string]interface{}{"exit_code": code}
		if ev.Signal != nil {
			extra["signal"] = *ev.Signal
		}
		log.Info(component, logPrefix+" Process terminated with code: "+code, f.fields(extra))
		f.publish(eventbus.BackendTerminated, extra)

	default:
	}
}

// FormatCode renders an exit code, or "unknown" when there is none.
func FormatCode(code *int) string {
	if code == nil {
		return "unknown"
	}
	return strconv.Itoa(*code)
}

func (f Forwarder) fields(extra map[string]interface{}) map[string]interface{} {
	if len(f.Fields) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(f.Fields)+len(extra))
	maps.Copy(out, f.Fields)
	maps.Copy(out, extra)
	return out
}

func (f Forwarder) publish(eventType string, data map[string]interface{}) {
	if f.Publisher == nil {
		return
	}
	f.Publisher.Publish(eventbus.Event{Type: eventType, Data: data})
}
