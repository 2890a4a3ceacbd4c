package worker_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/elmdrive/elmdrive/compiler"
	"github.com/elmdrive/elmdrive/executor"
	"github.com/elmdrive/elmdrive/worker"
	"github.com/stretchr/testify/require"
)

// writeArtifact drops the given artifact text at the --output path,
// resolving a relative path against the working directory the way a
// real compiler process would.
func writeArtifact(t *testing.T, spec executor.Spec, artifact string) bool {
	t.Helper()
	for i, a := range spec.Args {
		if a == "--output" && i+1 < len(spec.Args) {
			out := spec.Args[i+1]
			if !filepath.IsAbs(out) {
				out = filepath.Join(spec.Dir, out)
			}
			if err := os.WriteFile(out, []byte(artifact), 0o644); err != nil {
				t.Errorf("write artifact: %v", err)
				return false
			}
			return true
		}
	}
	t.Error("no --output in args")
	return false
}

// artifactWriter fakes a compile that emits testArtifact to --output.
func artifactWriter(t *testing.T) executor.Handler {
	return func(spec executor.Spec, stdout, stderr io.Writer) int {
		if !writeArtifact(t, spec, testArtifact) {
			return 1
		}
		return 0
	}
}

func TestStartWorker(t *testing.T) {
	scripted := executor.Scripted(artifactWriter(t))
	c, err := compiler.New(compiler.WithExecutor(scripted))
	require.NoError(t, err)

	base := t.TempDir()
	h, err := worker.StartWorker(context.Background(), c, base, "src/Worker.elm", "Worker", "cfg")
	require.NoError(t, err)
	defer h.Close()

	// The compile ran with the base directory as cwd and a script
	// artifact as the forced capture target.
	calls := scripted.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, base, calls[0].Dir)
	require.Equal(t, "make", calls[0].Args[0])
	require.Equal(t, "src/Worker.elm", calls[0].Args[1])

	results, err := h.Port("results")
	require.NoError(t, err)
	commands, err := h.Port("commands")
	require.NoError(t, err)

	var got []any
	require.NoError(t, results.Subscribe(func(v any) { got = append(got, v) }))
	require.NoError(t, commands.Send("ping"))

	require.Len(t, got, 1)
	v := got[0].(map[string]any)
	require.Equal(t, "cfg", v["flags"])
	require.Equal(t, "ping", v["echo"])
}

func TestStartWorkerDefaultModule(t *testing.T) {
	scripted := executor.Scripted(func(spec executor.Spec, stdout, stderr io.Writer) int {
		artifact := `this.Elm = { Main: { init: function(){ return { ports: {} }; } } };`
		if !writeArtifact(t, spec, artifact) {
			return 1
		}
		return 0
	})
	c, err := compiler.New(compiler.WithExecutor(scripted))
	require.NoError(t, err)

	h, err := worker.StartWorker(context.Background(), c, t.TempDir(), "src/Main.elm", "", nil)
	require.NoError(t, err)
	h.Close()
}

func TestStartWorkerModuleNotFound(t *testing.T) {
	scripted := executor.Scripted(artifactWriter(t))
	c, err := compiler.New(compiler.WithExecutor(scripted))
	require.NoError(t, err)

	_, err = worker.StartWorker(context.Background(), c, t.TempDir(), "src/Worker.elm", "Absent", nil)
	require.ErrorIs(t, err, worker.ErrModuleNotFound)
}

func TestStartWorkerCompileFailure(t *testing.T) {
	scripted := executor.Scripted(func(spec executor.Spec, stdout, stderr io.Writer) int {
		io.WriteString(stderr, "-- PARSE ERROR --\n")
		return 1
	})
	c, err := compiler.New(compiler.WithExecutor(scripted))
	require.NoError(t, err)

	_, err = worker.StartWorker(context.Background(), c, t.TempDir(), "src/Worker.elm", "Worker", nil)
	var compileErr *compiler.CompileError
	require.ErrorAs(t, err, &compileErr)
	require.Contains(t, compileErr.Output, "PARSE ERROR")
}

// stubLoader exercises the loader boundary without any engine.
type stubLoader struct {
	script string
}

func (l *stubLoader) Load(script string) (worker.Registry, error) {
	l.script = script
	return stubRegistry{}, nil
}

type stubRegistry struct{}

func (stubRegistry) Lookup(name string) (worker.Factory, error) {
	if name != "Stub" {
		return nil, worker.ErrModuleNotFound
	}
	return stubFactory{}, nil
}

type stubFactory struct{}

func (stubFactory) Init(flags any) (worker.Handle, error) { return stubHandle{}, nil }

type stubHandle struct{}

func (stubHandle) Port(name string) (worker.Port, error) { return nil, worker.ErrPortNotFound }
func (stubHandle) PortNames() []string                   { return nil }
func (stubHandle) Close() error                          { return nil }

func TestStartWorkerCustomLoader(t *testing.T) {
	scripted := executor.Scripted(func(spec executor.Spec, stdout, stderr io.Writer) int {
		if !writeArtifact(t, spec, "artifact-text") {
			return 1
		}
		return 0
	})
	c, err := compiler.New(compiler.WithExecutor(scripted))
	require.NoError(t, err)

	loader := &stubLoader{}
	h, err := worker.StartWorker(context.Background(), c, t.TempDir(), "src/Stub.elm", "Stub", nil,
		worker.WithLoader(loader))
	require.NoError(t, err)
	require.NotNil(t, h)
	require.Equal(t, "artifact-text", loader.script)
}
