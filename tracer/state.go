package tracer

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrAlreadyActive is returned when a tracer is entered while another one is active in the same state.
	ErrAlreadyActive = errors.New("another tracer is already active")

	// ErrNotActive is returned when a tracer that is not the current one is released.
	ErrNotActive = errors.New("tracer is not active")

	// ErrEmptyStack marks operations that need at least one traced frame.
	ErrEmptyStack = errors.New("no traced call on the stack")
)

// State is a slot holding at most one active tracer.
type State struct {
	mu      sync.Mutex
	current *Tracer
}

var defaultState State

// DefaultState returns the process-wide state used when nothing else is given.
func DefaultState() *State {
	return &defaultState
}

// Current returns the tracer active in the default state, or nil.
func Current() *Tracer {
	return defaultState.Current()
}

// Current returns the active tracer or nil.
func (s *State) Current() *Tracer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *State) install(t *Tracer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		if s.current == t {
			return fmt.Errorf("install tracer twice: %w", ErrAlreadyActive)
		}
		return ErrAlreadyActive
	}

	s.current = t
	return nil
}

func (s *State) release(t *Tracer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != t {
		return ErrNotActive
	}

	s.current = nil
	return nil
}

type tracerContextKey struct{}

// NewContext returns a copy of ctx carrying t.
// Tracked functions accepting a context.Context as their first parameter use it
// before consulting their state.
func NewContext(ctx context.Context, t *Tracer) context.Context {
	return context.WithValue(ctx, tracerContextKey{}, t)
}

// FromContext returns the tracer carried by ctx, if any.
func FromContext(ctx context.Context) *Tracer {
	if ctx == nil {
		return nil
	}

	t, _ := ctx.Value(tracerContextKey{}).(*Tracer)
	return t
}
