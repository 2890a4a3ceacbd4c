package worker

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"
)

// exportRoot is the global the artifact registers its modules under.
const exportRoot = "Elm"

type jsLoader struct{}

// JS returns the default loader: each Load evaluates the artifact in a
// fresh, isolated ECMAScript engine whose globals contain only what
// the engine itself provides, so artifacts cannot see each other or
// the host environment.
func JS() Loader { return jsLoader{} }

func (jsLoader) Load(script string) (Registry, error) {
	env := &jsEnv{vm: goja.New()}
	if _, err := env.vm.RunString(script); err != nil {
		return nil, fmt.Errorf("evaluate artifact: %w", err)
	}
	return &jsRegistry{env: env}, nil
}

// jsEnv serializes all access to one engine. The engine is not
// goroutine-safe, so every registry, factory, handle and port derived
// from a Load shares this mutex.
type jsEnv struct {
	mu sync.Mutex
	vm *goja.Runtime
}

type jsRegistry struct {
	env *jsEnv
}

func (r *jsRegistry) Lookup(name string) (Factory, error) {
	r.env.mu.Lock()
	defer r.env.mu.Unlock()

	current := r.env.vm.GlobalObject().Get(exportRoot)
	if !isUsable(current) {
		return nil, fmt.Errorf("%w: artifact exposes no %q object", ErrModuleNotFound, exportRoot)
	}

	walked := exportRoot
	for _, segment := range strings.Split(name, ".") {
		obj := current.ToObject(r.env.vm)
		current = obj.Get(segment)
		if !isUsable(current) {
			return nil, fmt.Errorf("%w: %q (no %q under %s)", ErrModuleNotFound, name, segment, walked)
		}
		walked += "." + segment
	}

	return &jsFactory{env: r.env, name: name, module: current.ToObject(r.env.vm)}, nil
}

type jsFactory struct {
	env    *jsEnv
	name   string
	module *goja.Object
}

func (f *jsFactory) Init(flags any) (Handle, error) {
	f.env.mu.Lock()
	defer f.env.mu.Unlock()

	initFn, ok := goja.AssertFunction(f.module.Get("init"))
	if !ok {
		return nil, fmt.Errorf("module %q has no init entry point", f.name)
	}

	arg := f.env.vm.NewObject()
	if err := arg.Set("flags", f.env.vm.ToValue(flags)); err != nil {
		return nil, fmt.Errorf("set init flags: %w", err)
	}

	appValue, err := initFn(goja.Undefined(), arg)
	if err != nil {
		return nil, fmt.Errorf("initialize module %q: %w", f.name, err)
	}
	if !isUsable(appValue) {
		return nil, fmt.Errorf("module %q init returned nothing", f.name)
	}

	h := &jsHandle{env: f.env, name: f.name}
	if ports := appValue.ToObject(f.env.vm).Get("ports"); isUsable(ports) {
		h.ports = ports.ToObject(f.env.vm)
	}
	return h, nil
}

type jsHandle struct {
	env    *jsEnv
	name   string
	ports  *goja.Object
	closed bool
}

func (h *jsHandle) Port(name string) (Port, error) {
	h.env.mu.Lock()
	defer h.env.mu.Unlock()

	if h.closed {
		return nil, errors.New("worker handle closed")
	}
	if h.ports == nil {
		return nil, fmt.Errorf("%w: %q (module %s declares no ports)", ErrPortNotFound, name, h.name)
	}
	v := h.ports.Get(name)
	if !isUsable(v) {
		return nil, fmt.Errorf("%w: %q", ErrPortNotFound, name)
	}
	return &jsPort{env: h.env, name: name, port: v.ToObject(h.env.vm)}, nil
}

func (h *jsHandle) PortNames() []string {
	h.env.mu.Lock()
	defer h.env.mu.Unlock()

	if h.ports == nil {
		return nil
	}
	return h.ports.Keys()
}

func (h *jsHandle) Close() error {
	h.env.mu.Lock()
	defer h.env.mu.Unlock()
	h.closed = true
	return nil
}

type jsPort struct {
	env  *jsEnv
	name string
	port *goja.Object
}

func (p *jsPort) Subscribe(fn func(value any)) error {
	p.env.mu.Lock()
	defer p.env.mu.Unlock()

	subscribe, ok := goja.AssertFunction(p.port.Get("subscribe"))
	if !ok {
		return fmt.Errorf("%w: port %q is inbound-only, no subscribe", ErrUnsupportedDirection, p.name)
	}

	callback := p.env.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		fn(call.Argument(0).Export())
		return goja.Undefined()
	})
	if _, err := subscribe(p.port, callback); err != nil {
		return fmt.Errorf("subscribe to port %q: %w", p.name, err)
	}
	return nil
}

func (p *jsPort) Send(value any) error {
	p.env.mu.Lock()
	defer p.env.mu.Unlock()

	send, ok := goja.AssertFunction(p.port.Get("send"))
	if !ok {
		return fmt.Errorf("%w: port %q is outbound-only, no send", ErrUnsupportedDirection, p.name)
	}
	if _, err := send(p.port, p.env.vm.ToValue(value)); err != nil {
		return fmt.Errorf("send to port %q: %w", p.name, err)
	}
	return nil
}

func isUsable(v goja.Value) bool {
	return v != nil && !goja.IsUndefined(v) && !goja.IsNull(v)
}
