package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

type osExecutor struct{}

// OS returns the native executor backed by os/exec.
func OS() Executor { return osExecutor{} }

func (osExecutor) Start(ctx context.Context, spec Spec) (Process, error) {
	if spec.Path == "" {
		return nil, errors.New("executor: empty executable path")
	}

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = mergeEnv(os.Environ(), spec.Env)

	p := &osProcess{cmd: cmd, done: make(chan struct{})}

	if spec.Stdout != nil {
		cmd.Stdout = spec.Stdout
	} else {
		cmd.Stdout = &p.outBuf
	}
	if spec.Stderr != nil {
		cmd.Stderr = spec.Stderr
	} else {
		cmd.Stderr = &p.errBuf
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	// cmd.Wait joins the stream-copy goroutines before returning, so
	// the buffers are complete when done closes.
	go func() {
		err := cmd.Wait()
		p.status = exitStatusFromWait(cmd, err)
		close(p.done)
	}()

	return p, nil
}

type osProcess struct {
	cmd    *exec.Cmd
	outBuf bytes.Buffer
	errBuf bytes.Buffer
	status ExitStatus
	done   chan struct{}
}

func (p *osProcess) Stdout() io.Reader { return &p.outBuf }
func (p *osProcess) Stderr() io.Reader { return &p.errBuf }

func (p *osProcess) Wait() ExitStatus {
	<-p.done
	return p.status
}

func (p *osProcess) Kill() error {
	if p.cmd.Process == nil {
		return errors.New("executor: process not started")
	}
	return p.cmd.Process.Kill()
}

func exitStatusFromWait(cmd *exec.Cmd, err error) ExitStatus {
	if err == nil {
		return ExitStatus{Code: cmd.ProcessState.ExitCode()}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Terminated by a signal; surface the wait error so the
			// caller can tell this apart from a plain failing exit.
			return ExitStatus{Code: code, Err: err}
		}
		return ExitStatus{Code: code}
	}
	return ExitStatus{Code: -1, Err: err}
}
