package tracer

type State struct{}

type Namespace struct {
	values map[string]any
}

func NewNamespace(values map[string]any) *Namespace {
	return &Namespace{values: values}
}

func (n *Namespace) Get(key string) any {
	return n.values[key]
}

type Var[T any] struct {
	ns  *Namespace
	key string
}

func Global[T any](ns *Namespace, key string, value T) Var[T] {
	ns.values[key] = value
	return Var[T]{ns: ns, key: key}
}

func (v Var[T]) Get() T {
	res, _ := v.ns.Get(v.key).(T)
	return res
}

func Track[F any](f F) F {
	return f
}

func TrackedCopy[F any](globals map[string]any, body func(g *Namespace) F) F {
	return body(NewNamespace(globals))
}
