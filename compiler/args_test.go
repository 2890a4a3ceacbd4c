package compiler_test

import (
	"errors"
	"testing"

	"github.com/elmdrive/elmdrive/compiler"
	"github.com/stretchr/testify/require"
)

func TestBuildArgsSubcommandAndSources(t *testing.T) {
	args, err := compiler.BuildArgs([]string{"src/Main.elm"}, compiler.Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"make", "src/Main.elm"}, args)

	args, err = compiler.BuildArgs([]string{"src/A.elm", "src/B.elm", "src/C.elm"}, compiler.Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"make", "src/A.elm", "src/B.elm", "src/C.elm"}, args)
}

func TestBuildArgsFlagTokens(t *testing.T) {
	tests := []struct {
		name string
		cfg  compiler.Config
		want []string
	}{
		{"help", compiler.Config{Help: true}, []string{"--help"}},
		{"output", compiler.Config{Output: "elm.js"}, []string{"--output", "elm.js"}},
		{"report", compiler.Config{Report: "json"}, []string{"--report", "json"}},
		{"debug", compiler.Config{Debug: true}, []string{"--debug"}},
		{"docs", compiler.Config{Docs: "docs.json"}, []string{"--docs", "docs.json"}},
		{"optimize", compiler.Config{Optimize: true}, []string{"--optimize"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := compiler.BuildArgs([]string{"src/Main.elm"}, tt.cfg)
			require.NoError(t, err)
			require.Equal(t, append([]string{"make", "src/Main.elm"}, tt.want...), args)
		})
	}
}

func TestBuildArgsRuntimeOptions(t *testing.T) {
	cfg := compiler.Config{
		Optimize:       true,
		RuntimeOptions: []string{"-A128m", "-H128m", "-n8m"},
	}
	args, err := compiler.BuildArgs([]string{"src/Main.elm"}, cfg)
	require.NoError(t, err)

	// The bracketed block goes after every other flag token, tokens in
	// their original order.
	require.Equal(t, []string{
		"make", "src/Main.elm",
		"--optimize",
		"+RTS", "-A128m", "-H128m", "-n8m", "-RTS",
	}, args)
}

func TestBuildArgsRuntimeOptionsSingleToken(t *testing.T) {
	args, err := compiler.BuildArgs([]string{"src/Main.elm"}, compiler.Config{RuntimeOptions: []string{"-N4"}})
	require.NoError(t, err)
	require.Equal(t, []string{"make", "src/Main.elm", "+RTS", "-N4", "-RTS"}, args)
}

func TestBuildArgsNoRuntimeOptionsNoBrackets(t *testing.T) {
	args, err := compiler.BuildArgs([]string{"src/Main.elm"}, compiler.Config{Debug: true})
	require.NoError(t, err)
	require.NotContains(t, args, "+RTS")
	require.NotContains(t, args, "-RTS")
}

func TestBuildArgsNoSources(t *testing.T) {
	_, err := compiler.BuildArgs(nil, compiler.Config{})
	require.ErrorIs(t, err, compiler.ErrNoSources)
}

func TestBuildArgsLegacyFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  compiler.Config
	}{
		{"yes", compiler.Config{Yes: true}},
		{"warn", compiler.Config{Warn: true}},
		{"pathToMake", compiler.Config{PathToMake: "/usr/bin/elm-make"}},
	}

	messages := make(map[string]string)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.BuildArgs([]string{"src/Main.elm"}, tt.cfg)
			var legacy *compiler.LegacyOptionError
			require.ErrorAs(t, err, &legacy)
			require.Equal(t, tt.name, legacy.Name)
			require.NotEmpty(t, legacy.Hint)
			messages[tt.name] = err.Error()
		})
	}

	// Each legacy name gets its own migration text.
	require.Len(t, messages, 3)
	require.NotEqual(t, messages["yes"], messages["warn"])
	require.NotEqual(t, messages["warn"], messages["pathToMake"])
	require.NotEqual(t, messages["yes"], messages["pathToMake"])
}

func TestBuildArgsPure(t *testing.T) {
	sources := []string{"src/Main.elm"}
	cfg := compiler.Config{RuntimeOptions: []string{"-N2"}, Optimize: true}

	first, err := compiler.BuildArgs(sources, cfg)
	require.NoError(t, err)
	second, err := compiler.BuildArgs(sources, cfg)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBuildArgsLegacyBeforeSourceCheck(t *testing.T) {
	// Legacy traps fire even when sources are also missing, so the
	// migration hint is never masked.
	_, err := compiler.BuildArgs(nil, compiler.Config{Yes: true})
	var legacy *compiler.LegacyOptionError
	require.True(t, errors.As(err, &legacy))
}
