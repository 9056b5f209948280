package a

import (
	"b"

	"github.com/sirkon/mindala/tracer"
)

const C = 1

var (
	A        = 23
	B        = 42
	counter  int
	cfg      b.Config
	state    tracer.State
	notAFunc = 42

	names = tracer.NewNamespace(map[string]any{"A": 23, "B": 42})
	varA  = tracer.Global(names, "A", 23)
)

func f(x int) int {
	return x + A // want `MDL001: UntrackedGlobalRead: package variable A read in tracked f bypasses the namespace`
}

func g(x int) int {
	counter++ // want `MDL002: GlobalWrite: package variable counter assigned in tracked g`
	_ = state
	return f(x) + names.Get("B").(int) + varA.Get() + C
}

func h() int {
	b.Shared = 1 // want `package variable Shared assigned in tracked h`
	cfg.Name = "h" // want `package variable cfg assigned in tracked h`
	return b.Shared // want `package variable Shared read in tracked h`
}

func untracked() int {
	counter = A + B
	return counter
}

type T struct{ n int }

func (t *T) Method() int {
	return t.n + B // want `package variable B read in tracked T.Method`
}

func register() {
	_ = tracer.Track(f)
	_ = tracer.Track(g)
	_ = tracer.Track(f)
	_ = tracer.Track(h)
	_ = tracer.Track((&T{}).Method)
	_ = tracer.Track(notAFunc) // want `MDL003: TrackNonFunc: notAFunc is not a function`
	_ = tracer.Track(func() int {
		return B // want `package variable B read in tracked function literal`
	})
	_ = tracer.TrackedCopy(map[string]any{"A": A}, func(g *tracer.Namespace) func() int {
		return func() int {
			return g.Get("A").(int) + A // want `package variable A read in tracked function literal`
		}
	})
	_ = untracked()
}
