package compiler_test

import (
	"encoding/json"
	"testing"

	"github.com/elmdrive/elmdrive/compiler"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	cfg, err := compiler.ParseOptions(map[string]any{
		"pathToElm":      "/opt/elm/bin/elm",
		"output":         "elm.js",
		"report":         "json",
		"debug":          true,
		"optimize":       false,
		"docs":           "docs.json",
		"runtimeOptions": []string{"-A128m"},
		"verbose":        true,
		"cwd":            "/tmp/project",
	})
	require.NoError(t, err)
	require.Equal(t, "/opt/elm/bin/elm", cfg.Path)
	require.Equal(t, "elm.js", cfg.Output)
	require.Equal(t, "json", cfg.Report)
	require.True(t, cfg.Debug)
	require.False(t, cfg.Optimize)
	require.Equal(t, "docs.json", cfg.Docs)
	require.Equal(t, []string{"-A128m"}, cfg.RuntimeOptions)
	require.True(t, cfg.Verbose)
	require.Equal(t, "/tmp/project", cfg.Cwd)
}

func TestParseOptionsUnknownKey(t *testing.T) {
	_, err := compiler.ParseOptions(map[string]any{"foo": "bar"})
	var unknown *compiler.UnknownOptionError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "foo", unknown.Name)
	require.Contains(t, err.Error(), `"foo"`)
}

func TestParseOptionsLegacyKeys(t *testing.T) {
	for _, name := range []string{"yes", "warn", "pathToMake"} {
		t.Run(name, func(t *testing.T) {
			_, err := compiler.ParseOptions(map[string]any{name: true})
			var legacy *compiler.LegacyOptionError
			require.ErrorAs(t, err, &legacy)
			require.Equal(t, name, legacy.Name)
		})
	}
}

func TestParseOptionsWrongTypes(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{"output", 42},
		{"debug", "yes"},
		{"runtimeOptions", "-A128m"},
		{"runtimeOptions", []any{"-A128m", 7}},
	}
	for _, tt := range tests {
		_, err := compiler.ParseOptions(map[string]any{tt.key: tt.value})
		var invalid *compiler.InvalidConfigError
		require.ErrorAs(t, err, &invalid, "key %s", tt.key)
		require.Equal(t, tt.key, invalid.Name)
	}
}

func TestParseOptionsFromJSON(t *testing.T) {
	// Options files arrive through encoding/json, so lists come in as
	// []any.
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"optimize": true,
		"runtimeOptions": ["-A128m", "-N4"]
	}`), &raw))

	cfg, err := compiler.ParseOptions(raw)
	require.NoError(t, err)
	require.True(t, cfg.Optimize)
	require.Equal(t, []string{"-A128m", "-N4"}, cfg.RuntimeOptions)
}

func TestParseOptionsEmpty(t *testing.T) {
	cfg, err := compiler.ParseOptions(nil)
	require.NoError(t, err)
	require.Equal(t, compiler.Config{}, cfg)
}
