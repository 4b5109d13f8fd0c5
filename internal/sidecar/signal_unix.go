//go:build unix

package sidecar

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

func killTree(p *os.Process) error {
	if p == nil {
		return nil
	}
	if p.Pid > 0 {
		_ = unix.Kill(-p.Pid, unix.SIGKILL)
	}
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func exitSignal(ps *os.ProcessState) *int {
	ws, ok := ps.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return nil
	}
	sig := int(ws.Signal())
	return &sig
}
