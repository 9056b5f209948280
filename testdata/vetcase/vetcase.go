package vetcase

import "github.com/sirkon/mindala/tracer"

var A = 23

func f(x int) int {
	return x + A
}

func g(x int) int {
	names := tracer.NewNamespace(map[string]any{"A": A})
	return x + names.Get("A").(int)
}

var (
	trackedF = tracer.Track(f)
	trackedG = tracer.Track(g)
)
