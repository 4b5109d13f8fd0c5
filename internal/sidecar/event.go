package sidecar

// Event is something the process layer observed about the sidecar.
// The set of kinds is closed: Stdout, Stderr, Error and Terminated.
type Event interface {
	isEvent()
}

// Stdout is one line the sidecar wrote to standard output, without its
// line terminator. Bytes are passed through as written.
type Stdout struct {
	Line []byte
}

// Stderr is one line the sidecar wrote to standard error.
type Stderr struct {
	Line []byte
}

// Error reports a failure in the process layer after a successful spawn,
// such as a broken output pipe.
type Error struct {
	Err error
}

// Terminated is the last event of a stream. Code is nil when the OS could
// not report an exit status, e.g. the process was killed by a signal.
type Terminated struct {
	Code   *int
	Signal *int
}

func (Stdout) isEvent()     {}
func (Stderr) isEvent()     {}
func (Error) isEvent()      {}
func (Terminated) isEvent() {}
