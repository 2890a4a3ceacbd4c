package compiler

// Runtime-option bracket tokens. The pair is always emitted together,
// however many tokens sit between them.
const (
	rtsOpen  = "+RTS"
	rtsClose = "-RTS"
)

// BuildArgs is a pure function from sources and config to the argument
// list for the compiler: the make subcommand first, then the sources
// in input order, then flag tokens, then the bracketed runtime-option
// block. Boolean switches never take a value token.
func BuildArgs(sources []string, cfg Config) ([]string, error) {
	if err := checkLegacyFields(cfg); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	args := make([]string, 0, len(sources)+len(cfg.RuntimeOptions)+12)
	args = append(args, "make")
	args = append(args, sources...)

	if cfg.Help {
		args = append(args, "--help")
	}
	if cfg.Output != "" {
		args = append(args, "--output", cfg.Output)
	}
	if cfg.Report != "" {
		args = append(args, "--report", cfg.Report)
	}
	if cfg.Debug {
		args = append(args, "--debug")
	}
	if cfg.Docs != "" {
		args = append(args, "--docs", cfg.Docs)
	}
	if cfg.Optimize {
		args = append(args, "--optimize")
	}
	if len(cfg.RuntimeOptions) > 0 {
		args = append(args, rtsOpen)
		args = append(args, cfg.RuntimeOptions...)
		args = append(args, rtsClose)
	}

	return args, nil
}

// checkLegacyFields traps the deprecated Config fields before any
// token is emitted, so the errors surface at build time rather than as
// compiler complaints.
func checkLegacyFields(cfg Config) error {
	if cfg.Yes {
		return &LegacyOptionError{Name: "yes", Hint: legacyHints["yes"]}
	}
	if cfg.Warn {
		return &LegacyOptionError{Name: "warn", Hint: legacyHints["warn"]}
	}
	if cfg.PathToMake != "" {
		return &LegacyOptionError{Name: "pathToMake", Hint: legacyHints["pathToMake"]}
	}
	return nil
}
