package executor

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// Spec describes one invocation of the compiler.
type Spec struct {
	// Path is the executable to run. For the Wasm executor it is the
	// path to a WASI .wasm build of the toolchain.
	Path string

	// Args are the command-line arguments, not including the program
	// name itself.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds extra environment variables merged over the ambient
	// environment.
	Env map[string]string

	// Stdout and Stderr, when non-nil, receive the process output as
	// it arrives. When nil, the Process buffers the stream and exposes
	// it through its Stdout/Stderr readers after exit.
	Stdout io.Writer
	Stderr io.Writer
}

// ExitStatus is the terminal state of a process.
type ExitStatus struct {
	// Code is the process exit code. Zero means success.
	Code int

	// Err is a transport-level failure (the process could not run or
	// was torn down abnormally), not a non-zero exit. A non-zero Code
	// with a nil Err is a process that ran and failed.
	Err error
}

// Process is a live handle to a started invocation. Wait blocks until
// the process exits and all stream data has been delivered; it may be
// called multiple times and always returns the same status.
type Process interface {
	// Stdout returns the buffered standard output. Valid once Wait has
	// returned; empty if the Spec supplied its own writer.
	Stdout() io.Reader

	// Stderr is the standard-error counterpart of Stdout.
	Stderr() io.Reader

	Wait() ExitStatus

	// Kill forcibly terminates the process. Wait then reports the
	// abnormal exit.
	Kill() error
}

// Executor starts processes. Implementations must be safe for
// concurrent use by multiple goroutines.
type Executor interface {
	Start(ctx context.Context, spec Spec) (Process, error)
}

// Run starts the spec and blocks until it exits. It is the
// synchronous counterpart of Executor.Start.
func Run(ctx context.Context, e Executor, spec Spec) (ExitStatus, error) {
	p, err := e.Start(ctx, spec)
	if err != nil {
		return ExitStatus{}, err
	}
	return p.Wait(), nil
}

// syncWriter serializes writes from both stream-copy goroutines into
// one buffer, preserving arrival order.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

// CombinedBuffer returns a writer that can serve as both Stdout and
// Stderr of a Spec, interleaving chunks in arrival order, and a
// function that reads the accumulated text.
func CombinedBuffer() (io.Writer, func() string) {
	w := &syncWriter{}
	return w, w.String
}

func mergeEnv(ambient []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return ambient
	}
	env := make([]string, len(ambient), len(ambient)+len(extra))
	copy(env, ambient)
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}
