package compiler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/elmdrive/elmdrive/executor"
)

// DefaultPath is the binary name resolved through the host's
// executable search when no explicit path is configured.
const DefaultPath = "elm"

// Compiler invokes the external compiler. Safe for concurrent use,
// subject to the build-cache caveat in the package documentation.
type Compiler struct {
	path    string
	exec    executor.Executor
	log     *slog.Logger
	verbose bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithPath sets the compiler binary. Relative names are resolved
// through PATH at spawn time.
func WithPath(path string) Option {
	return func(c *Compiler) { c.path = path }
}

// WithExecutor injects the process executor. The default runs native
// binaries via os/exec; tests substitute executor.Scripted, and hosts
// with a WASI toolchain substitute executor.Wasm.
func WithExecutor(e executor.Executor) Option {
	return func(c *Compiler) { c.exec = e }
}

// WithLogger sets the logger used for verbose traces.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) { c.log = l }
}

// WithVerbose traces every invocation, regardless of per-call config.
func WithVerbose() Option {
	return func(c *Compiler) { c.verbose = true }
}

// New creates a Compiler with defaults resolved: the elm binary on
// PATH, the os/exec executor, and the default slog logger.
func New(opts ...Option) (*Compiler, error) {
	c := &Compiler{
		path: DefaultPath,
		exec: executor.OS(),
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.exec == nil {
		return nil, ErrNilExecutor
	}
	return c, nil
}

// Make builds the argument list and starts the compiler, returning the
// live process handle without waiting. The caller owns the handle and
// must consume Wait. Configuration errors surface before any spawn.
func (c *Compiler) Make(ctx context.Context, cfg Config, sources ...string) (executor.Process, error) {
	spec, err := c.spec(cfg, sources)
	if err != nil {
		return nil, err
	}
	return c.start(ctx, cfg, spec)
}

// MakeSync runs the compiler to completion, returning the exit status
// and the interleaved stdout+stderr transcript.
func (c *Compiler) MakeSync(ctx context.Context, cfg Config, sources ...string) (executor.ExitStatus, string, error) {
	spec, err := c.spec(cfg, sources)
	if err != nil {
		return executor.ExitStatus{}, "", err
	}

	combined, transcript := executor.CombinedBuffer()
	spec.Stdout = combined
	spec.Stderr = combined

	p, err := c.start(ctx, cfg, spec)
	if err != nil {
		return executor.ExitStatus{}, "", err
	}
	return p.Wait(), transcript(), nil
}

func (c *Compiler) spec(cfg Config, sources []string) (executor.Spec, error) {
	args, err := BuildArgs(sources, cfg)
	if err != nil {
		return executor.Spec{}, err
	}
	path := cfg.Path
	if path == "" {
		path = c.path
	}
	return executor.Spec{Path: path, Args: args, Dir: cfg.Cwd}, nil
}

func (c *Compiler) start(ctx context.Context, cfg Config, spec executor.Spec) (executor.Process, error) {
	if c.verboseFor(cfg) {
		c.log.Info("running compiler",
			"cmd", spec.Path+" "+strings.Join(spec.Args, " "),
			"dir", spec.Dir)
	}
	p, err := c.exec.Start(ctx, spec)
	if err != nil {
		return nil, &SpawnError{Path: spec.Path, Err: err}
	}
	return p, nil
}

func (c *Compiler) verboseFor(cfg Config) bool {
	return c.verbose || cfg.Verbose
}
