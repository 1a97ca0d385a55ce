package vim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Transport delivers a remote command to a named server.
type Transport interface {
	// Send invokes the server with the given client arguments (an argv
	// fragment from ShowLocationArgs, or {"--remote-expr", expr}) and
	// returns the server's textual reply, if any.
	//
	// Send must complete within a bounded time. An error means the
	// command was dropped; the server's state is unknown either way.
	Send(ctx context.Context, server string, args []string) (string, error)
}

// DefaultBinary is the client executable used when none is configured.
const DefaultBinary = "vim"

// DefaultSendTimeout bounds a single client invocation.
const DefaultSendTimeout = 5 * time.Second

// ExecTransport implements Transport by running the vim binary as a
// short-lived remote client.
//
// Every invocation carries +q so that, when no server is listening and the
// binary falls back to starting a fresh instance, that instance quits
// immediately instead of squatting on the debugger's terminal.
type ExecTransport struct {
	mu sync.RWMutex

	// Client executable name or path.
	binary string

	// Per-send deadline.
	timeout time.Duration

	// Debug logging hook. May be nil.
	logf func(format string, args ...any)
}

// TransportOption configures an ExecTransport.
type TransportOption func(*ExecTransport)

// WithBinary sets the client executable.
func WithBinary(name string) TransportOption {
	return func(t *ExecTransport) {
		if name != "" {
			t.binary = name
		}
	}
}

// WithTimeout sets the per-send deadline.
func WithTimeout(d time.Duration) TransportOption {
	return func(t *ExecTransport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithLogf sets a debug logging hook for sent commands and replies.
func WithLogf(logf func(format string, args ...any)) TransportOption {
	return func(t *ExecTransport) {
		t.logf = logf
	}
}

// NewExecTransport creates a transport with the given options.
func NewExecTransport(opts ...TransportOption) *ExecTransport {
	t := &ExecTransport{
		binary:  DefaultBinary,
		timeout: DefaultSendTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetBinary changes the client executable at runtime.
func (t *ExecTransport) SetBinary(name string) {
	if name == "" {
		return
	}
	t.mu.Lock()
	t.binary = name
	t.mu.Unlock()
}

// Binary returns the configured client executable.
func (t *ExecTransport) Binary() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.binary
}

// Send runs the client process and waits for it to exit.
func (t *ExecTransport) Send(ctx context.Context, server string, args []string) (string, error) {
	t.mu.RLock()
	binary := t.binary
	timeout := t.timeout
	t.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	argv := clientArgs(server, args)
	t.debugf("cmd: %s %s", binary, strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, binary, argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if out := stdout.String(); out != "" {
		t.debugf("out: %s", strings.TrimRight(out, "\n"))
	}
	if errOut := stderr.String(); errOut != "" {
		t.debugf("err: %s", strings.TrimRight(errOut, "\n"))
	}

	switch {
	case err == nil && stderr.Len() == 0:
		return stdout.String(), nil
	case ctx.Err() != nil:
		return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
	case errors.Is(err, exec.ErrNotFound):
		return "", fmt.Errorf("%w: %q", ErrNoBinary, binary)
	default:
		detail := strings.TrimSpace(stderr.String())
		if detail == "" && err != nil {
			detail = err.Error()
		}
		return "", fmt.Errorf("%w: %s", ErrRemoteFailed, detail)
	}
}

// clientArgs builds the full client argv after the binary name.
func clientArgs(server string, args []string) []string {
	argv := []string{"+q", "--servername", server}
	return append(argv, args...)
}

func (t *ExecTransport) debugf(format string, args ...any) {
	if t.logf != nil {
		t.logf(format, args...)
	}
}

// Ensure ExecTransport implements Transport.
var _ Transport = (*ExecTransport)(nil)
