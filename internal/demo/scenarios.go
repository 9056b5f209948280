package demo

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirkon/mindala/tracer"
)

// Module is the module name frames of demo functions are attributed to.
const Module = "github.com/sirkon/mindala/internal/demo"

const (
	A = 23
	B = 42
)

// ErrUnknownScenario is returned for scenario names that are not registered.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is a named piece of traced code.
type Scenario struct {
	Name        string
	Description string

	// Run executes the scenario. Tracked functions must be bound to s, ctx carries the tracer.
	Run func(ctx context.Context, s *tracer.State) (any, error)
}

func globals() map[string]any {
	return map[string]any{"A": A, "B": B}
}

func plusA(x int) int {
	return x + A
}

// trackedF builds f(x) = x + A with its global read routed through a namespace.
func trackedF(s *tracer.State, ns map[string]any) func(int) int {
	return tracer.Track(tracer.TrackedCopy(ns, func(names *tracer.Namespace) func(int) int {
		return func(x int) int {
			return x + names.Get("A").(int)
		}
	}, tracer.WithNamespaceState(s)), tracer.Named(Module, "f"), tracer.WithTrackState(s))
}

// trackedG builds g(x) = f(x) + B.
func trackedG(s *tracer.State, ns map[string]any, f func(int) int) func(int) int {
	return tracer.Track(tracer.TrackedCopy(ns, func(names *tracer.Namespace) func(int) int {
		return func(x int) int {
			return f(x) + names.Get("B").(int)
		}
	}, tracer.WithNamespaceState(s)), tracer.Named(Module, "g"), tracer.WithTrackState(s))
}

var scenarios = []Scenario{
	{
		Name:        "flat",
		Description: "plain f(x) = x + A tracked at top level: no caller, no edges",
		Run: func(ctx context.Context, s *tracer.State) (any, error) {
			f := tracer.Track(plusA, tracer.WithTrackState(s))
			return f(10), nil
		},
	},
	{
		Name:        "copy",
		Description: "f built as a tracked copy: the read of A is attributed to f",
		Run: func(ctx context.Context, s *tracer.State) (any, error) {
			f := trackedF(s, globals())
			return f(10), nil
		},
	},
	{
		Name:        "nested",
		Description: "g(x) = f(x) + B: a call edge g -> f plus reads of A and B",
		Run: func(ctx context.Context, s *tracer.State) (any, error) {
			ns := globals()
			g := trackedG(s, ns, trackedF(s, ns))
			return g(10), nil
		},
	},
	{
		Name:        "panic",
		Description: "f panics inside g; with unwinding the stack is balanced afterwards",
		Run: func(ctx context.Context, s *tracer.State) (res any, err error) {
			ns := globals()
			boom := tracer.Track(tracer.TrackedCopy(ns, func(names *tracer.Namespace) func(int) int {
				return func(x int) int {
					panic(fmt.Sprintf("f(%d) with A=%v", x, names.Get("A")))
				}
			}, tracer.WithNamespaceState(s)), tracer.Named(Module, "f"), tracer.WithTrackState(s))
			g := trackedG(s, ns, boom)

			defer func() {
				if r := recover(); r != nil {
					res = fmt.Sprintf("recovered: %v", r)
				}
			}()
			return g(10), nil
		},
	},
	{
		Name:        "context",
		Description: "the tracer reaches functions through a context.Context instead of a state",
		Run: func(ctx context.Context, _ *tracer.State) (any, error) {
			// Nobody ever enters this state.
			var idle tracer.State
			ns := tracer.NewNamespace(globals(), tracer.WithNamespaceState(&idle))

			f := tracer.Track(func(ctx context.Context, x int) int {
				return x + ns.GetContext(ctx, "A").(int)
			}, tracer.Named(Module, "f"), tracer.WithTrackState(&idle))
			g := tracer.Track(func(ctx context.Context, x int) int {
				return f(ctx, x) + ns.GetContext(ctx, "B").(int)
			}, tracer.Named(Module, "g"), tracer.WithTrackState(&idle))

			return g(ctx, 10), nil
		},
	},
}

// Scenarios returns all registered scenarios in presentation order.
func Scenarios() []Scenario {
	return slices.Clone(scenarios)
}

// Lookup finds scenarios by name. No names means all of them.
func Lookup(names ...string) ([]Scenario, error) {
	if len(names) == 0 {
		return Scenarios(), nil
	}

	res := make([]Scenario, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(scenarios, func(s Scenario) bool { return s.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("lookup %q: %w", name, ErrUnknownScenario)
		}
		res = append(res, scenarios[i])
	}

	return res, nil
}
