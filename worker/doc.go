// Package worker bootstraps compiled artifacts headlessly.
//
// # Overview
//
// A compiled script artifact is JavaScript text that registers its
// modules under a root export object. StartWorker compiles an entry
// source, evaluates the artifact in an isolated engine, resolves a
// module by its dot-delimited name, and initializes it in worker mode.
// The resulting Handle exposes the module's ports: named channels that
// support Subscribe for outbound values and Send for inbound ones,
// whichever directions the module itself declares.
//
// # Basic Usage
//
//	c, _ := compiler.New()
//	h, err := worker.StartWorker(ctx, c, ".", "src/Worker.elm", "Worker", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, _ := h.Port("results")
//	results.Subscribe(func(v any) { fmt.Println("got", v) })
//
//	commands, _ := h.Port("commands")
//	commands.Send("start")
//
// The evaluation boundary is the Loader interface; the default loader
// runs the artifact on an embedded ECMAScript engine. Tests substitute
// their own Loader to exercise callers without any engine at all.
package worker
