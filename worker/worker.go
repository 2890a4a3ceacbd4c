package worker

import (
	"context"

	"github.com/elmdrive/elmdrive/compiler"
)

// Option configures StartWorker.
type Option func(*startConfig)

type startConfig struct {
	loader Loader
}

// WithLoader substitutes the artifact loader. The default evaluates
// the artifact with the embedded ECMAScript engine.
func WithLoader(l Loader) Option {
	return func(c *startConfig) { c.loader = l }
}

// StartWorker compiles the entry source with baseDir as the working
// directory, evaluates the resulting script artifact, resolves
// moduleName inside it and initializes the module with flags. An empty
// moduleName resolves "Main".
//
// The capture forces a script artifact regardless of any output the
// caller might usually configure; workers have no document to render
// into.
func StartWorker(ctx context.Context, c *compiler.Compiler, baseDir, entry, moduleName string, flags any, opts ...Option) (Handle, error) {
	cfg := startConfig{loader: JS()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if moduleName == "" {
		moduleName = "Main"
	}

	script, err := c.CompileToString(ctx, compiler.Config{Cwd: baseDir}, entry)
	if err != nil {
		return nil, err
	}

	registry, err := cfg.loader.Load(script)
	if err != nil {
		return nil, err
	}
	factory, err := registry.Lookup(moduleName)
	if err != nil {
		return nil, err
	}
	return factory.Init(flags)
}
