// Package e2e drives the built binary inside a pseudo terminal.
package e2e

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

var ansiEscape = regexp.MustCompile(`\x1b(\[[0-9;?]*[a-zA-Z]|[()][0-9A-B])`)

// StripANSI removes escape sequences so assertions see plain text
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// SessionConfig describes the process to run
type SessionConfig struct {
	Command string
	Args    []string
	Env     []string
	Rows    uint16
	Cols    uint16
	// Timeout bounds the whole session
	Timeout time.Duration
}

// Session is a running process attached to a pty
type Session struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	cancel context.CancelFunc

	mu     sync.Mutex
	output bytes.Buffer
	done   chan struct{}
}

// Start launches the process and begins capturing its output
func Start(config SessionConfig) (*Session, error) {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Rows == 0 {
		config.Rows = 24
	}
	if config.Cols == 0 {
		config.Cols = 80
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	cmd.Env = append(os.Environ(), config.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: config.Rows, Cols: config.Cols})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start PTY: %w", err)
	}

	s := &Session{cmd: cmd, ptmx: ptmx, cancel: cancel, done: make(chan struct{})}
	go s.capture()
	return s, nil
}

func (s *Session) capture() {
	defer close(s.done)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.output.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send types str into the terminal
func (s *Session) Send(str string) error {
	_, err := s.ptmx.Write([]byte(str))
	return err
}

// Output is everything printed so far with escape sequences removed
func (s *Session) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StripANSI(s.output.String())
}

// WaitFor polls the output until it contains text
func (s *Session) WaitFor(text string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.Output(), text) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for %q", text)
}

// Wait blocks until the process exits or timeout passes
func (s *Session) Wait(timeout time.Duration) error {
	exited := make(chan error, 1)
	go func() { exited <- s.cmd.Wait() }()
	select {
	case err := <-exited:
		return err
	case <-time.After(timeout):
		return errors.New("process did not exit")
	}
}

// Close kills the process if it is still running and releases the pty
func (s *Session) Close() {
	s.cancel()
	s.ptmx.Close()
	<-s.done
}
