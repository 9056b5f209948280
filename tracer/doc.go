// Package tracer records in-process call graphs and reads of module-level names.
//
// A [Tracer] is a scoped recorder. While it is active, functions wrapped with [Track]
// report their entry and exit, and values read through a [Namespace] report which
// global was read and what it held. Everything is attributed to the innermost traced
// frame at the moment of the event.
//
// Core components:
//
//   - State
//     Slot holding at most one active tracer. A process-wide default slot exists so
//     that tracked code can discover "is anyone listening" without parameter threading.
//     Tracers can also be carried by a context.Context, see [NewContext].
//
//   - Tracer
//     Owns the call stack and the graph. The graph is an append-only log of
//     [GraphEntry] values, each one either a [GraphCall] or a [GraphGlobal].
//
//   - Track
//     Wraps a function of any signature into a function of the same signature that
//     pushes and pops a stack frame around the call when a tracer is active.
//
//   - Namespace
//     Read-tracking view over a map of module-level names. Reads through Get and
//     Lookup are recorded, everything else passes through silently.
//
//   - TrackedCopy
//     Builds a function whose global lookups go through a Namespace.
//
// Only nested calls produce call edges: a top-level traced call has no caller frame
// and therefore leaves no trace in the graph by itself.
//
// Typical usage:
//
//	globals := map[string]any{"A": 23}
//	f := tracer.Track(tracer.TrackedCopy(globals, func(g *tracer.Namespace) func(int) int {
//	    return func(x int) int { return x + g.Get("A").(int) }
//	}), tracer.Named("demo", "f"))
//
//	t := tracer.New()
//	_ = t.Run(func() error {
//	    f(10)
//	    return nil
//	})
//	// t.Graph() == []GraphEntry{{"demo", "f", GraphGlobal{"A", 23}}}
//
// The tracer is not meant for concurrent traced calls: frames of different goroutines
// would interleave on a single stack.
package tracer
