package executor

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// Handler fakes one compiler invocation for the Scripted executor. It
// may write to stdout/stderr and create whatever files the invocation
// is expected to produce (the artifact named by --output, typically).
// The return value becomes the process exit code.
type Handler func(spec Spec, stdout, stderr io.Writer) int

// ScriptedExecutor is a test double that runs invocations through a
// Handler instead of spawning anything. It records every Spec it was
// started with.
type ScriptedExecutor struct {
	handler Handler
	mu      sync.Mutex
	calls   []Spec
}

func Scripted(h Handler) *ScriptedExecutor {
	return &ScriptedExecutor{handler: h}
}

func (e *ScriptedExecutor) Start(ctx context.Context, spec Spec) (Process, error) {
	e.mu.Lock()
	e.calls = append(e.calls, spec)
	e.mu.Unlock()

	p := &scriptedProcess{done: make(chan struct{})}

	var stdout, stderr io.Writer
	if spec.Stdout != nil {
		stdout = spec.Stdout
	} else {
		stdout = &p.outBuf
	}
	if spec.Stderr != nil {
		stderr = spec.Stderr
	} else {
		stderr = &p.errBuf
	}

	go func() {
		code := e.handler(spec, stdout, stderr)
		p.status = ExitStatus{Code: code}
		close(p.done)
	}()

	return p, nil
}

// Calls returns a copy of every Spec started so far.
func (e *ScriptedExecutor) Calls() []Spec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Spec(nil), e.calls...)
}

type scriptedProcess struct {
	outBuf bytes.Buffer
	errBuf bytes.Buffer
	status ExitStatus
	done   chan struct{}
}

func (p *scriptedProcess) Stdout() io.Reader { return &p.outBuf }
func (p *scriptedProcess) Stderr() io.Reader { return &p.errBuf }

func (p *scriptedProcess) Wait() ExitStatus {
	<-p.done
	return p.status
}

func (p *scriptedProcess) Kill() error { return nil }
