package tracer

import (
	"reflect"
	"runtime"
	"strings"
)

// funcIdentity resolves the frame identity of a function value from its runtime symbol.
func funcIdentity(fn reflect.Value) StackEntry {
	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return StackEntry{QualName: fn.Type().String()}
	}

	return splitFuncName(rf.Name())
}

// splitFuncName splits a runtime symbol like
//
//	github.com/user/pkg.(*T).Method-fm
//
// into the package path and a qualified name ("T.Method").
func splitFuncName(full string) StackEntry {
	full = strings.TrimSuffix(full, "-fm")
	full = strings.ReplaceAll(full, "[...]", "")

	slash := strings.LastIndexByte(full, '/')
	dot := strings.IndexByte(full[slash+1:], '.')
	if dot < 0 {
		return StackEntry{QualName: full}
	}
	dot += slash + 1

	// Dots in the last path element are escaped by the linker.
	module := strings.ReplaceAll(full[:dot], "%2e", ".")

	qual := full[dot+1:]
	qual = strings.ReplaceAll(qual, "(*", "")
	qual = strings.ReplaceAll(qual, ")", "")

	return StackEntry{
		Module:   module,
		QualName: qual,
	}
}
