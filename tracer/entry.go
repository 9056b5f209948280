package tracer

import (
	"fmt"
)

// StackEntry identifies a currently executing traced call.
type StackEntry struct {
	// Module is the import path of the package that declares the function.
	Module string

	// QualName is the package-local qualified name, like "f", "T.Method" or "f.func1".
	QualName string
}

func (e StackEntry) String() string {
	return e.Module + "." + e.QualName
}

// GraphOp is implemented by the payloads of graph entries.
// It is either a [GraphCall] or a [GraphGlobal].
type GraphOp interface {
	isGraphOp()
}

// GraphCall is a call edge: the caller directly invoked this function.
type GraphCall struct {
	Module   string
	QualName string
}

// GraphGlobal is a global-read edge: the caller read Key and saw Value.
type GraphGlobal struct {
	Key   string
	Value any
}

func (GraphCall) isGraphOp()   {}
func (GraphGlobal) isGraphOp() {}

// GraphEntry is a single recorded event attributed to its caller frame.
type GraphEntry struct {
	CallerModule   string
	CallerQualName string
	Op             GraphOp
}

// Caller returns the frame the entry is attributed to.
func (e GraphEntry) Caller() StackEntry {
	return StackEntry{Module: e.CallerModule, QualName: e.CallerQualName}
}

func (e GraphEntry) String() string {
	switch op := e.Op.(type) {
	case GraphCall:
		return fmt.Sprintf("%s.%s -> call %s.%s", e.CallerModule, e.CallerQualName, op.Module, op.QualName)
	case GraphGlobal:
		return fmt.Sprintf("%s.%s -> global %s = %v", e.CallerModule, e.CallerQualName, op.Key, op.Value)
	default:
		return fmt.Sprintf("%s.%s -> unknown(%T)", e.CallerModule, e.CallerQualName, e.Op)
	}
}
