package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/elmdrive/elmdrive/compiler"
	"github.com/spf13/cobra"
)

var makeCmd = &cobra.Command{
	Use:   "make [sources...]",
	Short: "Compile Elm sources",
	Long: `Compile one or more Elm source files.

With --output the compiler writes the artifact itself; without it the
compiled JavaScript is captured and printed to stdout. An --options
file (JSON object of compiler options) is applied first, then explicit
flags override it.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runMake,
}

func init() {
	makeCmd.Flags().StringP("output", "o", "", "Artifact path (.js or .html)")
	makeCmd.Flags().Bool("optimize", false, "Optimized build")
	makeCmd.Flags().Bool("debug", false, "Debug build with the time-traveling debugger")
	makeCmd.Flags().String("report", "", "Report mode (e.g. json)")
	makeCmd.Flags().String("docs", "", "Write documentation JSON to this path")
	makeCmd.Flags().StringSlice("rts", nil, "Runtime-system token (repeatable)")
	makeCmd.Flags().String("options", "", "JSON file of compiler options")
	makeCmd.Flags().String("cwd", "", "Working directory for the compile")
	rootCmd.AddCommand(makeCmd)
}

func buildConfig(cmd *cobra.Command) (compiler.Config, error) {
	var cfg compiler.Config

	if optionsFile, _ := cmd.Flags().GetString("options"); optionsFile != "" {
		data, err := os.ReadFile(optionsFile)
		if err != nil {
			return cfg, err
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", optionsFile, err)
		}
		cfg, err = compiler.ParseOptions(raw)
		if err != nil {
			return cfg, err
		}
	}

	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output = v
	}
	if v, _ := cmd.Flags().GetBool("optimize"); v {
		cfg.Optimize = true
	}
	if v, _ := cmd.Flags().GetBool("debug"); v {
		cfg.Debug = true
	}
	if v, _ := cmd.Flags().GetString("report"); v != "" {
		cfg.Report = v
	}
	if v, _ := cmd.Flags().GetString("docs"); v != "" {
		cfg.Docs = v
	}
	if v, _ := cmd.Flags().GetStringSlice("rts"); len(v) > 0 {
		cfg.RuntimeOptions = v
	}
	if v, _ := cmd.Flags().GetString("cwd"); v != "" {
		cfg.Cwd = v
	}
	return cfg, nil
}

func runMake(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		fail("%v", err)
	}

	c, closer, err := newCompiler(cmd)
	if err != nil {
		fail("%v", err)
	}
	defer closer()

	ctx := context.Background()

	if cfg.Output != "" {
		status, transcript, err := c.MakeSync(ctx, cfg, args...)
		if err != nil {
			fail("%v", err)
		}
		if status.Code != 0 {
			fmt.Fprint(os.Stderr, transcript)
			os.Exit(status.Code)
		}
		return
	}

	out, err := c.CompileToString(ctx, cfg, args...)
	if err != nil {
		var compileErr *compiler.CompileError
		if errors.As(err, &compileErr) {
			fmt.Fprint(os.Stderr, compileErr.Output)
			os.Exit(compileErr.ExitCode)
		}
		fail("%v", err)
	}
	fmt.Print(out)
}
