package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"tremors-music/internal/config"
)

// Options controls which sink Install puts in place.
type Options struct {
	Profile config.Profile

	// Console receives human-readable output. Defaults to os.Stdout.
	Console io.Writer

	// LogDir, when set, adds a JSON log file target inside it.
	LogDir   string
	FileName string

	// Level is the minimum level of the development sink. Defaults to info.
	Level *zerolog.Level
}

// Sink is the result of a successful Install.
type Sink struct {
	Logger    Logger
	Profile   config.Profile
	Path      string
	Installed bool

	file *os.File
}

// Close releases the log file, if one was opened.
func (s *Sink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

var (
	installOnce sync.Once
	installed   *Sink
	installErr  error
)

// Install configures process-wide logging for the given build profile.
// Development builds get a console (and optional file) sink at info and
// above; production builds keep the fallback logger, which only shows
// errors. Only the first call does any work; later calls return its result.
func Install(opts Options) (*Sink, error) {
	installOnce.Do(func() {
		installed, installErr = install(opts)
	})
	return installed, installErr
}

func install(opts Options) (*Sink, error) {
	if opts.Profile != config.Development {
		return &Sink{Logger: Default(), Profile: opts.Profile}, nil
	}

	level := zerolog.InfoLevel
	if opts.Level != nil {
		level = *opts.Level
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	sink := &Sink{Profile: opts.Profile, Installed: true}
	writers := []io.Writer{zerolog.SyncWriter(NewConsoleWriter(console))}

	if opts.LogDir != "" {
		name := opts.FileName
		if name == "" {
			name = "app.log"
		}
		if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
		path := filepath.Join(opts.LogDir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		sink.file = f
		sink.Path = path
		writers = append(writers, zerolog.SyncWriter(f))
	}

	sink.Logger = NewZerolog(zerolog.MultiLevelWriter(writers...), level)
	setDefault(sink.Logger)

	return sink, nil
}
