package compiler

import "fmt"

// Config holds the per-invocation compiler options. The zero value
// compiles with defaults: no output redirection, current working
// directory, quiet.
type Config struct {
	// Path overrides the compiler binary for this invocation. Empty
	// means the Compiler's configured path.
	Path string

	// Output is the artifact path handed to --output. Its extension
	// selects the artifact kind: .js for a script artifact, .html for
	// a standalone document.
	Output string

	// Report selects the compiler's report mode (e.g. "json").
	Report string

	Debug    bool
	Optimize bool

	// Docs asks the compiler to write a documentation JSON file.
	Docs string

	// RuntimeOptions are raw tokens for the compiler's runtime system,
	// emitted bracketed between +RTS and -RTS in the given order.
	RuntimeOptions []string

	// Verbose traces the exact invocation to the logger before spawn
	// and echoes the diagnostic transcript on success.
	Verbose bool

	// Cwd is the working directory for the invocation.
	Cwd string

	// Help emits --help instead of a useful compile. Mostly here so
	// the full flag table round-trips through ParseOptions.
	Help bool

	// Deprecated: prompting was removed from the compiler. Setting
	// this always fails argument building with a migration hint.
	Yes bool

	// Deprecated: warnings are always on. Setting this always fails
	// argument building with a migration hint.
	Warn bool

	// Deprecated: the make subcommand is built in. Setting this always
	// fails argument building with a migration hint.
	PathToMake string
}

// ParseOptions validates a dynamic option map (an options file, an
// embedding host's config) into a Config. Every key must be one of the
// recognized option names; unknown keys are rejected rather than
// ignored, and the historical names yes, warn and pathToMake fail with
// name-specific migration hints.
func ParseOptions(raw map[string]any) (Config, error) {
	var cfg Config
	for key, value := range raw {
		if hint, ok := legacyHints[key]; ok {
			return Config{}, &LegacyOptionError{Name: key, Hint: hint}
		}

		var err error
		switch key {
		case "pathToElm":
			cfg.Path, err = stringOption(key, value)
		case "output":
			cfg.Output, err = stringOption(key, value)
		case "report":
			cfg.Report, err = stringOption(key, value)
		case "debug":
			cfg.Debug, err = boolOption(key, value)
		case "optimize":
			cfg.Optimize, err = boolOption(key, value)
		case "docs":
			cfg.Docs, err = stringOption(key, value)
		case "runtimeOptions":
			cfg.RuntimeOptions, err = stringListOption(key, value)
		case "verbose":
			cfg.Verbose, err = boolOption(key, value)
		case "cwd":
			cfg.Cwd, err = stringOption(key, value)
		case "help":
			cfg.Help, err = boolOption(key, value)
		default:
			return Config{}, &UnknownOptionError{Name: key}
		}
		if err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func stringOption(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &InvalidConfigError{Name: key, Want: "a string"}
	}
	return s, nil
}

func boolOption(key string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, &InvalidConfigError{Name: key, Want: "a boolean"}
	}
	return b, nil
}

func stringListOption(key string, value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &InvalidConfigError{Name: key, Want: fmt.Sprintf("a list of strings, got element %T", item)}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &InvalidConfigError{Name: key, Want: "a list of strings"}
	}
}
