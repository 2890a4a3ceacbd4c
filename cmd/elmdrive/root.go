package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/elmdrive/elmdrive/compiler"
	"github.com/elmdrive/elmdrive/executor"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "elmdrive",
	Short: "Drive the Elm compiler from the command line",
	Long: `elmdrive - Compile Elm sources through an external elm binary.

Compile to a file or to stdout, list local source dependencies, or run
a compiled module headlessly and talk to its ports over stdio.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Trace compiler invocations")
	rootCmd.PersistentFlags().String("compiler", "", "Path to the elm binary (default: elm on PATH)")
	rootCmd.PersistentFlags().String("wasm-compiler", "", "Path to a WASI build of the toolchain, run in-process")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newCompiler builds a Compiler from the persistent flags. The
// returned closer releases the wasm runtime when one was requested.
func newCompiler(cmd *cobra.Command) (*compiler.Compiler, func(), error) {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	path, _ := cmd.Root().PersistentFlags().GetString("compiler")
	wasmPath, _ := cmd.Root().PersistentFlags().GetString("wasm-compiler")

	level := log.WarnLevel
	if verbose {
		level = log.InfoLevel
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           level,
	})

	opts := []compiler.Option{compiler.WithLogger(slog.New(handler))}
	if verbose {
		opts = append(opts, compiler.WithVerbose())
	}

	closer := func() {}
	switch {
	case wasmPath != "":
		wasmExec, err := executor.Wasm()
		if err != nil {
			return nil, nil, err
		}
		closer = func() { wasmExec.Close() }
		opts = append(opts, compiler.WithExecutor(wasmExec), compiler.WithPath(wasmPath))
	case path != "":
		opts = append(opts, compiler.WithPath(path))
	}

	c, err := compiler.New(opts...)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return c, closer, nil
}
