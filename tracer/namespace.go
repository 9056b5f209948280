package tracer

import (
	"context"
	"iter"
	"maps"
	"slices"
)

// Namespace is a read-tracking view over a map of module-level names.
//
// The map is wrapped, not copied: changes made to it elsewhere are visible through
// the namespace. Only Get, Lookup and GetContext report reads; Has, Len, Keys, All
// and Set bypass the tracer.
type Namespace struct {
	values map[string]any
	state  *State
}

// NamespaceOption configures a [Namespace].
type NamespaceOption func(n *Namespace)

// WithNamespaceState makes the namespace report reads to the tracer active in s.
func WithNamespaceState(s *State) NamespaceOption {
	return func(n *Namespace) {
		n.state = s
	}
}

// NewNamespace wraps values. A nil map is replaced with an empty one.
func NewNamespace(values map[string]any, opts ...NamespaceOption) *Namespace {
	if values == nil {
		values = map[string]any{}
	}

	n := &Namespace{
		values: values,
		state:  &defaultState,
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Get returns the value of key, or nil if there is no such name.
// Reads of existing names are reported to the active tracer.
func (n *Namespace) Get(key string) any {
	v, _ := n.Lookup(key)
	return v
}

// Lookup returns the value of key and whether it exists.
// Reads of existing names are reported to the active tracer.
func (n *Namespace) Lookup(key string) (any, bool) {
	return n.lookup(n.state.Current(), key)
}

// GetContext is Get that prefers a tracer carried by ctx.
func (n *Namespace) GetContext(ctx context.Context, key string) any {
	t := FromContext(ctx)
	if t == nil || !t.Active() {
		t = n.state.Current()
	}

	v, _ := n.lookup(t, key)
	return v
}

func (n *Namespace) lookup(t *Tracer, key string) (any, bool) {
	v, ok := n.values[key]
	if !ok {
		return nil, false
	}

	if t != nil {
		t.RegisterGlobalAccess(key, v)
	}
	return v, true
}

// Has reports whether key exists. Not tracked.
func (n *Namespace) Has(key string) bool {
	_, ok := n.values[key]
	return ok
}

// Len returns the number of names. Not tracked.
func (n *Namespace) Len() int {
	return len(n.values)
}

// Keys returns sorted names. Not tracked.
func (n *Namespace) Keys() []string {
	return slices.Sorted(maps.Keys(n.values))
}

// All iterates over names and values in unspecified order. Not tracked.
func (n *Namespace) All() iter.Seq2[string, any] {
	return maps.All(n.values)
}

// Set binds key to value. Not tracked.
func (n *Namespace) Set(key string, value any) {
	n.values[key] = value
}

// Var is a typed handle for a single module-level name of a namespace.
type Var[T any] struct {
	ns  *Namespace
	key string
}

// Global binds key to value in ns and returns a typed handle for it.
func Global[T any](ns *Namespace, key string, value T) Var[T] {
	ns.Set(key, value)
	return Var[T]{ns: ns, key: key}
}

// Key returns the name of the variable.
func (v Var[T]) Key() string {
	return v.key
}

// Get returns the current value and reports the read to the active tracer.
// The zero value is returned if the name was removed or rebound to another type.
func (v Var[T]) Get() T {
	res, _ := v.ns.Get(v.key).(T)
	return res
}

// Set rebinds the variable. Not tracked.
func (v Var[T]) Set(value T) {
	v.ns.Set(v.key, value)
}

// TrackedCopy builds a function whose global lookups go through a namespace over
// globals. body receives the namespace and returns the function itself:
//
//	f := tracer.TrackedCopy(globals, func(g *tracer.Namespace) func(int) int {
//	    return func(x int) int { return x + g.Get("A").(int) }
//	})
//
// The result is usually passed to [Track].
func TrackedCopy[F any](globals map[string]any, body func(g *Namespace) F, opts ...NamespaceOption) F {
	return body(NewNamespace(globals, opts...))
}
