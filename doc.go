// Package elmdrive drives the external Elm compiler from Go.
//
// # Overview
//
// elmdrive turns a configuration struct into a validated `elm make`
// invocation, runs the compiler as a separate process, and captures
// what it produces. Compiled modules can also be bootstrapped
// headlessly ("worker mode") and driven entirely through their ports.
//
// # Basic Usage
//
//	c, _ := compiler.New()
//
//	// Compile and capture the artifact text
//	js, err := c.CompileToString(ctx, compiler.Config{}, "src/Main.elm")
//
//	// Run a module headlessly
//	h, err := worker.StartWorker(ctx, c, ".", "src/Worker.elm", "Worker", nil)
//	port, _ := h.Port("results")
//	port.Subscribe(func(v any) { fmt.Println(v) })
//
// # Substituting the process layer
//
//	// A WASI build of the toolchain, run in-process
//	wasmExec, _ := executor.Wasm()
//	defer wasmExec.Close()
//	c, _ := compiler.New(
//	    compiler.WithExecutor(wasmExec),
//	    compiler.WithPath("toolchain.wasm"))
//
// See the [compiler], [executor], [worker], and [deps] packages for
// detailed API documentation.
package elmdrive
