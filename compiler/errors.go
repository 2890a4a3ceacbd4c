package compiler

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

var (
	// ErrNoSources is returned when an invocation is requested with an
	// empty source list.
	ErrNoSources = errors.New("no source files given")

	// ErrNilExecutor is returned by New when the executor option was
	// explicitly set to nil. This is a programmer error.
	ErrNilExecutor = errors.New("nil process executor")
)

// UnknownOptionError reports a dynamic option key outside the
// recognized set.
type UnknownOptionError struct {
	Name string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown compiler option %q", e.Name)
}

// LegacyOptionError reports one of the option names that older
// releases of the compiler protocol accepted. Each carries a
// name-specific migration hint.
type LegacyOptionError struct {
	Name string
	Hint string
}

func (e *LegacyOptionError) Error() string {
	return fmt.Sprintf("option %q is no longer supported: %s", e.Name, e.Hint)
}

// The three historical names. The list is intentionally not extended.
var legacyHints = map[string]string{
	"yes":        "the compiler no longer prompts for confirmation, drop the option",
	"warn":       "warnings are always reported, drop the option",
	"pathToMake": `the make subcommand is built into the compiler, use "pathToElm" to point at the binary instead`,
}

// InvalidConfigError reports a recognized option whose value has the
// wrong shape.
type InvalidConfigError struct {
	Name string
	Want string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("option %q: expected %s", e.Name, e.Want)
}

// SpawnError wraps an OS-level failure to start the compiler. Its
// message is the classified, human-actionable form of the underlying
// error; the original error remains reachable through Unwrap.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string { return classifySpawn(e.Err, e.Path) }
func (e *SpawnError) Unwrap() error { return e.Err }

// classifySpawn maps a spawn failure to advisory text. It never
// affects control flow.
func classifySpawn(err error, path string) string {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("could not find compiler at %q, is it installed?", path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("compiler at %q lacked execute permission", path)
	case err != nil:
		return err.Error()
	default:
		return fmt.Sprintf("exception while invoking compiler %q", path)
	}
}

// CompileError reports a compiler run that exited non-zero. Output is
// the interleaved stdout and stderr transcript.
type CompileError struct {
	ExitCode int
	Output   string
}

func (e *CompileError) Error() string {
	out := strings.TrimRight(e.Output, "\n")
	if out == "" {
		return fmt.Sprintf("compiler exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("compiler exited with code %d:\n%s", e.ExitCode, out)
}
