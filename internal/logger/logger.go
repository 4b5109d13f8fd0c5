package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger is the structured logging surface used across the shell.
// Every entry carries the component that produced it.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component, message string, err error, fields map[string]interface{})
}

var (
	fallbackOut io.Writer = os.Stderr

	mu      sync.RWMutex
	current Logger = newFallback()
)

// newFallback is what callers get before any sink is installed:
// errors still reach fallbackOut, everything below is dropped.
func newFallback() Logger {
	return NewZerolog(fallbackOut, zerolog.ErrorLevel)
}

// Default returns the process-wide logger.
func Default() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func setDefault(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// NoOp discards everything.
type NoOp struct{}

func (NoOp) Debug(component, message string, fields map[string]interface{})            {}
func (NoOp) Info(component, message string, fields map[string]interface{})             {}
func (NoOp) Warning(component, message string, fields map[string]interface{})          {}
func (NoOp) Error(component, message string, err error, fields map[string]interface{}) {}
