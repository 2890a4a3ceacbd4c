package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elmdrive/elmdrive/executor"
	"github.com/elmdrive/elmdrive/internal/tempscope"
)

// scriptSuffix is the artifact suffix used when no output path is
// configured; the compiler only knows how to write compiled output to
// a file, so captures always go through one.
const scriptSuffix = ".js"

// CompileToString compiles the sources and returns the artifact text.
// The configured Output is used only for its extension (a .html output
// yields a standalone document artifact); the actual write goes to a
// uniquely named temp file that is removed before this returns, on
// every path. The file lives inside the working directory and is
// passed to the compiler as a relative path, so executors that expose
// only that directory to the compiler can still reach it. A non-zero
// exit yields a *CompileError carrying the interleaved stdout+stderr
// transcript.
func (c *Compiler) CompileToString(ctx context.Context, cfg Config, sources ...string) (string, error) {
	scope := tempscope.New()
	defer scope.Release()

	dir := cfg.Cwd
	if dir == "" {
		dir = "."
	}
	outPath, err := scope.CreateFileIn(dir, "elmdrive", artifactSuffix(cfg.Output))
	if err != nil {
		return "", fmt.Errorf("acquire output file: %w", err)
	}
	cfg.Output = filepath.Base(outPath)

	spec, err := c.spec(cfg, sources)
	if err != nil {
		return "", err
	}

	combined, transcript := executor.CombinedBuffer()
	spec.Stdout = combined
	spec.Stderr = combined

	p, err := c.start(ctx, cfg, spec)
	if err != nil {
		return "", err
	}

	// Wait fires only after both streams are fully delivered, so the
	// transcript is complete before we classify the exit.
	status := p.Wait()
	if status.Err != nil {
		return "", &SpawnError{Path: spec.Path, Err: status.Err}
	}
	if status.Code != 0 {
		out := transcript()
		if c.verboseFor(cfg) && out != "" {
			c.log.Info("compiler output", "output", out)
		}
		return "", &CompileError{ExitCode: status.Code, Output: out}
	}

	if c.verboseFor(cfg) {
		if out := transcript(); out != "" {
			c.log.Info("compiler output", "output", out)
		}
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("read compiled artifact: %w", err)
	}
	return string(data), nil
}

func artifactSuffix(output string) string {
	if ext := filepath.Ext(output); ext != "" {
		return ext
	}
	return scriptSuffix
}
