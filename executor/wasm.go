package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// WasmExecutor runs a WASI build of the toolchain in-process. The
// module is compiled once and reused across invocations.
type WasmExecutor struct {
	runtime  wazero.Runtime
	mu       sync.Mutex
	compiled map[string]wazero.CompiledModule
	closed   bool
}

// Wasm creates an executor backed by an embedded wazero runtime. Close
// it when no more invocations are needed.
func Wasm() (*WasmExecutor, error) {
	ctx := context.Background()

	rtConfig := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	rt := wazero.NewRuntimeWithConfig(ctx, rtConfig)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate WASI: %w", err)
	}

	return &WasmExecutor{
		runtime:  rt,
		compiled: make(map[string]wazero.CompiledModule),
	}, nil
}

func (e *WasmExecutor) Start(ctx context.Context, spec Spec) (Process, error) {
	compiled, err := e.getCompiled(ctx, spec.Path)
	if err != nil {
		return nil, err
	}

	p := &wasmProcess{done: make(chan struct{})}

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

	dir := spec.Dir
	if dir == "" {
		dir = "."
	}

	moduleConfig := wazero.NewModuleConfig().
		WithStdout(stdout).
		WithStderr(stderr).
		WithFSConfig(wazero.NewFSConfig().WithDirMount(dir, "/")).
		WithArgs(append([]string{spec.Path}, spec.Args...)...).
		WithSysWalltime().
		WithSysNanotime().
		WithName("")
	for k, v := range spec.Env {
		moduleConfig = moduleConfig.WithEnv(k, v)
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	go func() {
		defer cancel()
		mod, err := e.runtime.InstantiateModule(runCtx, compiled, moduleConfig)
		if mod != nil {
			mod.Close(runCtx)
		}
		p.status = wasmExitStatus(err)
		close(p.done)
	}()

	return p, nil
}

// getCompiled compiles the module at path once and caches it by path.
func (e *WasmExecutor) getCompiled(ctx context.Context, path string) (wazero.CompiledModule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, errors.New("executor: wasm executor closed")
	}
	if compiled, ok := e.compiled[path]; ok {
		return compiled, nil
	}

	binary, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wasm module: %w", err)
	}
	compiled, err := e.runtime.CompileModule(ctx, binary)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	e.compiled[path] = compiled
	return compiled, nil
}

// Close releases the runtime and all compiled modules.
func (e *WasmExecutor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.runtime.Close(context.Background())
}

type wasmProcess struct {
	outBuf bytes.Buffer
	errBuf bytes.Buffer
	status ExitStatus
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *wasmProcess) Stdout() io.Reader { return &p.outBuf }
func (p *wasmProcess) Stderr() io.Reader { return &p.errBuf }

func (p *wasmProcess) Wait() ExitStatus {
	<-p.done
	return p.status
}

func (p *wasmProcess) Kill() error {
	p.cancel()
	return nil
}

func wasmExitStatus(err error) ExitStatus {
	if err == nil {
		return ExitStatus{}
	}
	var exitErr *sys.ExitError
	if errors.As(err, &exitErr) {
		return ExitStatus{Code: int(exitErr.ExitCode())}
	}
	return ExitStatus{Code: -1, Err: err}
}
