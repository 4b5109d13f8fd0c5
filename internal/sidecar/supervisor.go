package sidecar

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/google/uuid"
)

var ErrAlreadySpawned = errors.New("sidecar already spawned")

const defaultBufferSize = 64

// Supervisor owns the one backend process of an application run.
type Supervisor struct {
	locator    Locator
	bufferSize int
	id         string

	mu    sync.Mutex
	child *Child
}

func NewSupervisor(locator Locator, bufferSize int) *Supervisor {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Supervisor{
		locator:    locator,
		bufferSize: bufferSize,
		id:         uuid.NewString(),
	}
}

// ID identifies this supervisor's run in log fields.
func (s *Supervisor) ID() string {
	return s.id
}

// Child returns the spawned process, or nil before a successful Spawn.
func (s *Supervisor) Child() *Child {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.child
}

// Spawn resolves the sidecar and starts it with no arguments and stdin
// bound to the null device. The returned channel delivers the child's
// output and, last, its Terminated event; it is closed afterwards.
func (s *Supervisor) Spawn() (<-chan Event, *Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.child != nil {
		return nil, nil, ErrAlreadySpawned
	}

	path, err := s.locator.Resolve()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving sidecar: %w", err)
	}

	cmd := exec.Command(path)
	configureCommand(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("starting sidecar %s: %w", path, err)
	}

	child := &Child{
		cmd:  cmd,
		path: path,
		pid:  cmd.Process.Pid,
		done: make(chan struct{}),
	}
	s.child = child

	events := make(chan Event, s.bufferSize)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		pump(stdout, "stdout", func(line []byte) Event { return Stdout{Line: line} }, events)
	}()

	go func() {
		defer wg.Done()
		pump(stderr, "stderr", func(line []byte) Event { return Stderr{Line: line} }, events)
	}()

	// Both pipes must be drained before Wait, which closes them.
	go func() {
		wg.Wait()

		if err := waitError(cmd.Wait()); err != nil {
			events <- Error{Err: err}
		}

		term := terminatedFrom(cmd)
		child.setExit(term)
		events <- term

		close(events)
		close(child.done)
	}()

	return events, child, nil
}

// pump sends every line of r as wrap(line), then an Error if reading
// stopped on anything but EOF.
func pump(r io.Reader, stream string, wrap func([]byte) Event, events chan<- Event) {
	if err := readLines(r, func(line []byte) { events <- wrap(line) }); err != nil {
		events <- Error{Err: fmt.Errorf("reading %s: %w", stream, err)}
	}
}

// waitError keeps the failures of cmd.Wait that are not an exit status;
// those are reported through Terminated instead.
func waitError(err error) error {
	var exitErr *exec.ExitError
	if err == nil || errors.As(err, &exitErr) {
		return nil
	}
	return fmt.Errorf("waiting for sidecar: %w", err)
}

// readLines calls emit for every line read from r, without the trailing
// "\n" or "\r\n". A final line without terminator is still emitted.
func readLines(r io.Reader, emit func([]byte)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			line = bytes.TrimSuffix(line, []byte("\n"))
			line = bytes.TrimSuffix(line, []byte("\r"))
			emit(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func terminatedFrom(cmd *exec.Cmd) Terminated {
	ps := cmd.ProcessState
	if ps == nil {
		return Terminated{}
	}

	var term Terminated
	if code := ps.ExitCode(); code >= 0 {
		term.Code = &code
	}
	term.Signal = exitSignal(ps)
	return term
}

// Child is the handle to a running sidecar.
type Child struct {
	cmd  *exec.Cmd
	path string
	pid  int
	done chan struct{}

	mu   sync.Mutex
	exit *Terminated
}

func (c *Child) PID() int     { return c.pid }
func (c *Child) Path() string { return c.path }

// Done is closed once the process has been reaped and its event stream
// closed.
func (c *Child) Done() <-chan struct{} {
	return c.done
}

// Exit returns the termination status, or nil while the process runs.
func (c *Child) Exit() *Terminated {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exit
}

func (c *Child) setExit(t Terminated) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exit = &t
}

// Kill terminates the sidecar and, where supported, its process group.
// Killing an exited child is a no-op.
func (c *Child) Kill() error {
	select {
	case <-c.done:
		return nil
	default:
	}
	return killTree(c.cmd.Process)
}
