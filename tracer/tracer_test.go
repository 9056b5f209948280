package tracer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"
)

func assertGraph(t *testing.T, want, got []GraphEntry) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		deepequal.SideBySide(t, "graph", want, got)
		t.Fatal("graph mismatch")
	}
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("panic was expected")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("error panic was expected, got %T: %v", r, r)
		}
		if !errors.Is(err, target) {
			t.Fatalf("panic with %v was expected, got %v", target, err)
		}
	}()

	fn()
}

func TestTracerRegisterCall(t *testing.T) {
	tr := New(WithState(&State{}))

	tr.RegisterCall("m", "a")
	if got := tr.Graph(); len(got) != 0 {
		t.Fatalf("top-level call must not produce edges, got %v", got)
	}

	tr.RegisterCall("m", "b")
	tr.RegisterCall("n", "c")
	tr.RegisterReturn()
	tr.RegisterCall("n", "d")
	tr.RegisterReturn()
	tr.RegisterReturn()
	tr.RegisterReturn()

	if depth := tr.Depth(); depth != 0 {
		t.Fatalf("empty stack was expected, got depth %d", depth)
	}

	assertGraph(t, []GraphEntry{
		{CallerModule: "m", CallerQualName: "a", Op: GraphCall{Module: "m", QualName: "b"}},
		{CallerModule: "m", CallerQualName: "b", Op: GraphCall{Module: "n", QualName: "c"}},
		{CallerModule: "m", CallerQualName: "b", Op: GraphCall{Module: "n", QualName: "d"}},
	}, tr.Graph())
}

func TestTracerRegisterGlobalAccess(t *testing.T) {
	tr := New(WithState(&State{}))

	expectPanic(t, ErrEmptyStack, func() {
		tr.RegisterGlobalAccess("A", 23)
	})

	tr.RegisterCall("m", "g")
	tr.RegisterGlobalAccess("B", 42)
	tr.RegisterCall("m", "f")
	tr.RegisterGlobalAccess("A", 23)
	tr.RegisterReturn()
	tr.RegisterGlobalAccess("B", 42)
	tr.RegisterReturn()

	assertGraph(t, []GraphEntry{
		{CallerModule: "m", CallerQualName: "g", Op: GraphGlobal{Key: "B", Value: 42}},
		{CallerModule: "m", CallerQualName: "g", Op: GraphCall{Module: "m", QualName: "f"}},
		{CallerModule: "m", CallerQualName: "f", Op: GraphGlobal{Key: "A", Value: 23}},
		{CallerModule: "m", CallerQualName: "g", Op: GraphGlobal{Key: "B", Value: 42}},
	}, tr.Graph())
}

func TestTracerRegisterReturnOnEmptyStack(t *testing.T) {
	tr := New(WithState(&State{}))
	expectPanic(t, ErrEmptyStack, tr.RegisterReturn)
}

func TestTracerEnterExit(t *testing.T) {
	var s State
	first := New(WithState(&s))
	second := New(WithState(&s))

	if s.Current() != nil {
		t.Fatal("no tracer was expected before enter")
	}

	if err := first.Enter(); err != nil {
		t.Fatalf("enter first tracer: %s", err)
	}
	if s.Current() != first || !first.Active() {
		t.Fatal("first tracer must be current and active")
	}

	tests := []struct {
		name   string
		action func() error
		want   error
	}{
		{
			name:   "second enter",
			action: second.Enter,
			want:   ErrAlreadyActive,
		},
		{
			name:   "same tracer enter",
			action: first.Enter,
			want:   ErrAlreadyActive,
		},
		{
			name:   "exit of inactive tracer",
			action: second.Exit,
			want:   ErrNotActive,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action()
			if !errors.Is(err, tt.want) {
				t.Fatalf("%v was expected, got %v", tt.want, err)
			}
			if s.Current() != first {
				t.Fatal("first tracer must stay current")
			}
		})
	}

	if err := first.Exit(); err != nil {
		t.Fatalf("exit first tracer: %s", err)
	}
	if s.Current() != nil || first.Active() {
		t.Fatal("state must be empty after exit")
	}

	if err := second.Enter(); err != nil {
		t.Fatalf("second tracer must enter after the first one left: %s", err)
	}
	if err := second.Exit(); err != nil {
		t.Fatalf("exit second tracer: %s", err)
	}
}

func TestTracerRun(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		var s State
		tr := New(WithState(&s))
		errStop := errors.New("stop")

		err := tr.Run(func() error {
			if s.Current() != tr {
				t.Error("tracer must be current inside Run")
			}
			return errStop
		})
		if !errors.Is(err, errStop) {
			t.Fatalf("%v was expected, got %v", errStop, err)
		}
		if s.Current() != nil {
			t.Fatal("tracer must be released after Run")
		}
	})

	t.Run("panic", func(t *testing.T) {
		var s State
		tr := New(WithState(&s))

		func() {
			defer func() {
				if r := recover(); r != "boom" {
					t.Fatalf("panic boom was expected, got %v", r)
				}
			}()
			_ = tr.Run(func() error {
				panic("boom")
			})
		}()

		if s.Current() != nil {
			t.Fatal("tracer must be released after a panic in Run")
		}
	})

	t.Run("nested", func(t *testing.T) {
		var s State
		outer := New(WithState(&s))
		inner := New(WithState(&s))

		err := outer.Run(func() error {
			return inner.Run(func() error {
				t.Error("inner region must not run")
				return nil
			})
		})
		if !errors.Is(err, ErrAlreadyActive) {
			t.Fatalf("%v was expected, got %v", ErrAlreadyActive, err)
		}
	})
}

func TestTracerSnapshots(t *testing.T) {
	tr := New(WithState(&State{}))
	tr.RegisterCall("m", "a")
	tr.RegisterCall("m", "b")

	graph := tr.Graph()
	graph[0].CallerQualName = "changed"
	stack := tr.Stack()
	stack[0].QualName = "changed"

	if tr.Graph()[0].CallerQualName != "a" {
		t.Fatal("Graph() returned shared slice, expected copy")
	}
	if tr.Stack()[0].QualName != "a" {
		t.Fatal("Stack() returned shared slice, expected copy")
	}
}

func TestGraphEntryString(t *testing.T) {
	tests := []struct {
		name  string
		entry GraphEntry
		want  string
	}{
		{
			name:  "call",
			entry: GraphEntry{CallerModule: "m", CallerQualName: "g", Op: GraphCall{Module: "m", QualName: "f"}},
			want:  "m.g -> call m.f",
		},
		{
			name:  "global",
			entry: GraphEntry{CallerModule: "m", CallerQualName: "f", Op: GraphGlobal{Key: "A", Value: 23}},
			want:  "m.f -> global A = 23",
		},
		{
			name:  "unknown",
			entry: GraphEntry{CallerModule: "m", CallerQualName: "f"},
			want:  "m.f -> unknown(<nil>)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
