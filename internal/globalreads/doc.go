// Package globalreads provides an analyzer that finds reads of package-level
// variables inside functions handed to the tracer.
//
// The tracer sees a global read only when it goes through a tracer.Namespace or a
// tracer.Var. A tracked function that reads a package variable directly works, but
// the read never shows up in the graph. This analyzer reports such places.
//
// Tracked functions are:
//
//   - the first argument of tracer.Track, when it is a function literal or a function
//     declared in the analyzed package;
//   - the body builder given to tracer.TrackedCopy, together with every closure it returns.
//
// Inside them, the analyzer reports:
//
//   - MDL001 UntrackedGlobalRead: a package-level variable is read directly;
//   - MDL002 GlobalWrite: a package-level variable is assigned;
//   - MDL003 TrackNonFunc: tracer.Track got a value that is not a function.
//
// Package variables holding a *tracer.Namespace or a tracer.Var are exempt: reading
// them is how tracked reads are made in the first place.
//
// Spans of tracked functions are kept in an interval index, so that a position
// resolves to the innermost tracked function covering it.
package globalreads
