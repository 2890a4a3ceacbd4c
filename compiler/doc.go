// Package compiler drives the external Elm compiler.
//
// # Overview
//
// A Compiler turns a Config into a validated `elm make` invocation,
// runs it through an injected executor, and captures what the binary
// produces. Compiled output can be returned as a live process handle
// (Make), a completed result (MakeSync), or the artifact text itself
// (CompileToString, which routes --output through a scoped temp file).
//
// # Basic Usage
//
//	c, _ := compiler.New()
//
//	// Compile to a string
//	js, err := c.CompileToString(ctx, compiler.Config{}, "src/Main.elm")
//
//	// Compile to a file, non-blocking
//	p, err := c.Make(ctx, compiler.Config{Output: "elm.js"}, "src/Main.elm")
//	status := p.Wait()
//
// # Concurrency
//
// The Elm compiler's on-disk build cache (elm-stuff) is not safe for
// concurrent writers. Callers compiling overlapping source trees must
// run those compilations strictly one after another; nothing here
// serializes them. Unrelated compilations are fine in parallel, and
// captured output files are uniquely named so they never collide.
package compiler
