package tracer

import (
	"context"
	"fmt"
	"reflect"
)

var contextType = reflect.TypeFor[context.Context]()

type trackOptions struct {
	id    StackEntry
	named bool
	state *State
}

// TrackOption configures [Track].
type TrackOption func(o *trackOptions)

// Named sets the frame identity instead of deriving it from the runtime symbol.
// Useful for closures, which otherwise show up as "f.func1".
func Named(module, qualName string) TrackOption {
	return func(o *trackOptions) {
		o.id = StackEntry{Module: module, QualName: qualName}
		o.named = true
	}
}

// WithTrackState makes the tracked function look for the active tracer in s.
func WithTrackState(s *State) TrackOption {
	return func(o *trackOptions) {
		o.state = s
	}
}

// Track returns a function with the signature of f that registers a call and a
// return around every invocation made while a tracer is active. With no active
// tracer it just calls f.
//
// If f takes a context.Context as its first parameter, a tracer carried by that
// context takes precedence over the state one.
//
// Track panics if f is not a non-nil function.
func Track[F any](f F, opts ...TrackOption) F {
	fn := reflect.ValueOf(f)
	if fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("tracer.Track: %T is not a function", f))
	}
	if fn.IsNil() {
		panic("tracer.Track: nil function")
	}

	o := trackOptions{state: &defaultState}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.named {
		o.id = funcIdentity(fn)
	}

	typ := fn.Type()
	takesCtx := typ.NumIn() > 0 && typ.In(0).Implements(contextType)
	call := fn.Call
	if typ.IsVariadic() {
		call = fn.CallSlice
	}

	wrapper := reflect.MakeFunc(typ, func(args []reflect.Value) []reflect.Value {
		t := o.resolve(args, takesCtx)
		if t == nil {
			return call(args)
		}

		t.RegisterCall(o.id.Module, o.id.QualName)
		if t.unwindOnPanic() {
			defer t.RegisterReturn()
			return call(args)
		}

		res := call(args)
		t.RegisterReturn()
		return res
	})

	return wrapper.Interface().(F)
}

func (o *trackOptions) resolve(args []reflect.Value, takesCtx bool) *Tracer {
	if takesCtx {
		if ctx, ok := args[0].Interface().(context.Context); ok {
			if t := FromContext(ctx); t != nil && t.Active() {
				return t
			}
		}
	}

	return o.state.Current()
}
