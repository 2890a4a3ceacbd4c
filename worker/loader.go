package worker

import "errors"

var (
	// ErrModuleNotFound means a segment of the requested dotted module
	// name is missing from the artifact's export root.
	ErrModuleNotFound = errors.New("module not found in compiled artifact")

	// ErrPortNotFound means the instantiated module declares no port
	// with the requested name.
	ErrPortNotFound = errors.New("port not declared by module")

	// ErrUnsupportedDirection means the port exists but does not carry
	// values the requested way: subscribing to an inbound-only port or
	// sending to an outbound-only one. Callers use errors.Is to tell
	// this apart from an engine failure.
	ErrUnsupportedDirection = errors.New("port does not support this direction")
)

// Loader evaluates a compiled script artifact into a Registry. This is
// the narrow boundary around dynamic evaluation: everything on the far
// side of Load is engine-specific.
type Loader interface {
	Load(script string) (Registry, error)
}

// Registry resolves modules inside an evaluated artifact by their
// dot-delimited names ("Main", "Pipeline.Worker").
type Registry interface {
	Lookup(name string) (Factory, error)
}

// Factory instantiates a resolved module in worker mode. The flags
// value becomes the module's initialization data.
type Factory interface {
	Init(flags any) (Handle, error)
}

// Handle owns one instantiated module and its ports. It is never
// reused across distinct artifacts.
type Handle interface {
	// Port returns the named port, or ErrPortNotFound.
	Port(name string) (Port, error)

	// PortNames lists the ports the module declares.
	PortNames() []string

	Close() error
}

// Port is one named channel into or out of the module. Which of the
// two operations a given port supports is declared by the compiled
// module; the bootstrap layer exposes whatever is there.
type Port interface {
	// Subscribe registers fn for every future outbound value. Past
	// values are not replayed. Multiple subscribers are allowed and
	// run in subscription order. fn is invoked on the goroutine that
	// triggered delivery and must not call back into the Handle.
	Subscribe(fn func(value any)) error

	// Send delivers an inbound value to the module.
	Send(value any) error
}
