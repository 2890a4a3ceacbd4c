// Package executor abstracts how the compiler binary is run.
//
// An Executor starts a process described by a Spec and returns a live
// Process handle. Three implementations are provided:
//
//   - OS runs a native binary with os/exec. This is the default.
//   - Wasm runs a WASI build of the toolchain in-process with wazero,
//     for hosts that cannot (or do not want to) ship a native binary.
//   - Scripted is a test double driven by a handler function, so the
//     rest of the system can be exercised without any real compiler.
//
// A Process's Wait returns only after all stdout and stderr data has
// been delivered, so callers that buffer both streams see a complete
// transcript before they look at the exit code.
package executor
