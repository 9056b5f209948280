package globalreads

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/types/typeutil"
)

// TracerPkgPath is the import path of the tracer package.
const TracerPkgPath = "github.com/sirkon/mindala/tracer"

type packagedFunc struct {
	pkgPath string
	name    string
}

// trackSpec tells which argument of a known function is traced.
type trackSpec struct {
	arg int

	// mustBeFunc means a non-function argument is a mistake worth reporting.
	mustBeFunc bool
}

var knownTrackers = map[packagedFunc]trackSpec{
	{pkgPath: TracerPkgPath, name: "Track"}:       {arg: 0, mustBeFunc: true},
	{pkgPath: TracerPkgPath, name: "TrackedCopy"}: {arg: 1},
}

// exemptTypes are types of package variables that are fine to read from tracked code.
var exemptTypes = map[packagedFunc]struct{}{
	{pkgPath: TracerPkgPath, name: "Namespace"}: {},
	{pkgPath: TracerPkgPath, name: "Var"}:       {},
	{pkgPath: TracerPkgPath, name: "State"}:     {},
}

// trackerSpec returns the spec of a known tracking function called by call.
func trackerSpec(pass *analysis.Pass, call *ast.CallExpr) (trackSpec, bool) {
	fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
	if !ok {
		// Builtins, conversions and calls of function values.
		return trackSpec{}, false
	}

	pkg := fn.Pkg()
	if pkg == nil {
		return trackSpec{}, false
	}

	spec, ok := knownTrackers[packagedFunc{pkgPath: pkg.Path(), name: fn.Name()}]
	return spec, ok
}

// isExemptType checks if t is (a pointer to) one of tracer's own namespace types.
func isExemptType(t types.Type) bool {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj.Pkg() == nil {
		return false
	}

	_, ok = exemptTypes[packagedFunc{pkgPath: obj.Pkg().Path(), name: obj.Name()}]
	return ok
}
