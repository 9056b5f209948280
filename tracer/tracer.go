package tracer

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Tracer records the call stack of traced functions and the graph of their calls and global reads.
type Tracer struct {
	mu     sync.Mutex
	stack  []StackEntry
	graph  []GraphEntry
	active bool

	state  *State
	log    *zap.Logger
	unwind bool
}

// Option configures a [Tracer].
type Option func(t *Tracer)

// WithState makes the tracer install itself into s instead of the default state.
func WithState(s *State) Option {
	return func(t *Tracer) {
		t.state = s
	}
}

// WithLogger sets a logger for lifecycle events.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tracer) {
		if log != nil {
			t.log = log
		}
	}
}

// WithUnwindOnPanic controls whether tracked calls pop their frame when they panic.
// It is on by default. Turning it off reproduces the unbalanced stack a panicking
// traced call leaves behind when returns are not deferred.
func WithUnwindOnPanic(unwind bool) Option {
	return func(t *Tracer) {
		t.unwind = unwind
	}
}

// New creates an inactive tracer.
func New(opts ...Option) *Tracer {
	t := &Tracer{
		state:  &defaultState,
		log:    zap.NewNop(),
		unwind: true,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Enter activates the tracer by installing it into its state.
func (t *Tracer) Enter() error {
	if err := t.state.install(t); err != nil {
		return fmt.Errorf("enter tracer: %w", err)
	}

	t.mu.Lock()
	t.active = true
	t.mu.Unlock()

	t.log.Debug("tracer entered")
	return nil
}

// Exit deactivates the tracer. The state is cleared only if this tracer is its current one.
func (t *Tracer) Exit() error {
	if err := t.state.release(t); err != nil {
		return fmt.Errorf("exit tracer: %w", err)
	}

	t.mu.Lock()
	t.active = false
	depth := len(t.stack)
	entries := len(t.graph)
	t.mu.Unlock()

	if depth > 0 {
		t.log.Warn("tracer exited with unbalanced stack", zap.Int("depth", depth))
	}
	t.log.Debug("tracer exited", zap.Int("entries", entries))
	return nil
}

// Run enters the tracer, runs fn and exits the tracer even if fn panics.
func (t *Tracer) Run(fn func() error) (err error) {
	if err := t.Enter(); err != nil {
		return err
	}
	defer func() {
		if exitErr := t.Exit(); exitErr != nil {
			err = errors.Join(err, exitErr)
		}
	}()

	return fn()
}

// Active reports whether the tracer is between Enter and Exit.
func (t *Tracer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// RegisterCall pushes a new frame. A call made from inside another traced
// frame is also recorded as a call edge from that frame.
func (t *Tracer) RegisterCall(module, qualName string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.stack); n > 0 {
		caller := t.stack[n-1]
		t.graph = append(t.graph, GraphEntry{
			CallerModule:   caller.Module,
			CallerQualName: caller.QualName,
			Op: GraphCall{
				Module:   module,
				QualName: qualName,
			},
		})
	}

	t.stack = append(t.stack, StackEntry{Module: module, QualName: qualName})
}

// RegisterGlobalAccess records a read of a module-level name by the innermost frame.
// It panics if there is no traced call on the stack.
func (t *Tracer) RegisterGlobalAccess(key string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.stack)
	if n == 0 {
		panic(fmt.Errorf("register access to global %q: %w", key, ErrEmptyStack))
	}

	top := t.stack[n-1]
	t.graph = append(t.graph, GraphEntry{
		CallerModule:   top.Module,
		CallerQualName: top.QualName,
		Op: GraphGlobal{
			Key:   key,
			Value: value,
		},
	})
}

// RegisterReturn pops the innermost frame. It panics on an empty stack.
func (t *Tracer) RegisterReturn() {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.stack)
	if n == 0 {
		panic(fmt.Errorf("register return: %w", ErrEmptyStack))
	}

	t.stack[n-1] = StackEntry{}
	t.stack = t.stack[:n-1]
}

// Depth returns the number of frames on the stack.
func (t *Tracer) Depth() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stack)
}

// Stack returns a snapshot of the stack, innermost frame last.
func (t *Tracer) Stack() []StackEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]StackEntry, len(t.stack))
	copy(out, t.stack)
	return out
}

// Graph returns a snapshot of all recorded entries in recording order.
func (t *Tracer) Graph() []GraphEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]GraphEntry, len(t.graph))
	copy(out, t.graph)
	return out
}

func (t *Tracer) unwindOnPanic() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unwind
}
