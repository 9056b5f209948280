package globalreads

import (
	"fmt"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const doc = `globalreads reports package variables accessed directly by tracked functions

Functions passed to tracer.Track and bodies passed to tracer.TrackedCopy should read
module-level names through a tracer.Namespace, otherwise the reads never reach the tracer.`

// Analyzer is the main entry point of the checker.
var Analyzer = &analysis.Analyzer{
	Name:     "globalreads",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	pector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	var rep Reporter
	index := newScopeIndex()

	collectTracked(pass, pector, index, rep.Phase(ReportCollect))
	index.build()
	scanVarUses(pass, pector, index, rep.Phase(ReportScan))

	rep.Flush(pass)
	return nil, nil
}

// collectTracked finds functions handed to known trackers and registers their spans.
func collectTracked(pass *analysis.Pass, pector *inspector.Inspector, index *scopeIndex, r *ReporterPhase) {
	decls := map[*types.Func]*ast.FuncDecl{}
	pector.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(node ast.Node) {
		decl := node.(*ast.FuncDecl)
		if fn, ok := pass.TypesInfo.Defs[decl.Name].(*types.Func); ok {
			decls[fn] = decl
		}
	})

	seen := map[*ast.FuncDecl]bool{}
	pector.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(node ast.Node) {
		call := node.(*ast.CallExpr)

		spec, ok := trackerSpec(pass, call)
		if !ok || spec.arg >= len(call.Args) {
			return
		}
		arg := ast.Unparen(call.Args[spec.arg])

		if spec.mustBeFunc {
			if !isFuncType(pass.TypesInfo.TypeOf(arg)) {
				r.Report(
					TrackNonFunc(),
					fmt.Sprintf("%s is not a function", types.ExprString(arg)),
					arg.Pos(),
				)
				return
			}
		}

		switch v := arg.(type) {
		case *ast.FuncLit:
			index.add(&trackedScope{name: "function literal"}, v.Pos(), v.End())

		case *ast.Ident, *ast.SelectorExpr:
			fn, ok := referencedFunc(pass, v)
			if !ok {
				return
			}
			decl, ok := decls[fn]
			if !ok || seen[decl] {
				// Declared elsewhere or already registered.
				return
			}
			seen[decl] = true
			index.add(&trackedScope{name: funcDeclName(decl)}, decl.Pos(), decl.End())
		}
	})
}

// scanVarUses reports accesses to package variables inside tracked spans.
func scanVarUses(pass *analysis.Pass, pector *inspector.Inspector, index *scopeIndex, r *ReporterPhase) {
	pector.WithStack([]ast.Node{(*ast.Ident)(nil)}, func(node ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		id := node.(*ast.Ident)
		v, ok := pass.TypesInfo.Uses[id].(*types.Var)
		if !ok || !isPackageVar(v) || isExemptType(v.Type()) {
			return true
		}

		scope := index.lookup(id.Pos())
		if scope == nil {
			return true
		}

		if isWrite(id, stack) {
			r.Report(
				GlobalWrite(),
				fmt.Sprintf("package variable %s assigned in tracked %s", v.Name(), scope.name),
				id.Pos(),
			)
			return true
		}

		r.Report(
			UntrackedGlobalRead(),
			fmt.Sprintf("package variable %s read in tracked %s bypasses the namespace", v.Name(), scope.name),
			id.Pos(),
		)
		return true
	})
}

func referencedFunc(pass *analysis.Pass, expr ast.Expr) (*types.Func, bool) {
	var id *ast.Ident
	switch v := expr.(type) {
	case *ast.Ident:
		id = v
	case *ast.SelectorExpr:
		id = v.Sel
	default:
		return nil, false
	}

	fn, ok := pass.TypesInfo.Uses[id].(*types.Func)
	if !ok {
		return nil, false
	}
	return fn.Origin(), true
}

func funcDeclName(decl *ast.FuncDecl) string {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return decl.Name.Name
	}

	recv := decl.Recv.List[0].Type
	if star, ok := recv.(*ast.StarExpr); ok {
		recv = star.X
	}
	switch v := recv.(type) {
	case *ast.IndexExpr:
		recv = v.X
	case *ast.IndexListExpr:
		recv = v.X
	}

	return types.ExprString(recv) + "." + decl.Name.Name
}

func isFuncType(t types.Type) bool {
	if t == nil {
		return false
	}
	_, ok := t.Underlying().(*types.Signature)
	return ok
}

func isPackageVar(v *types.Var) bool {
	if v.IsField() || v.Pkg() == nil {
		return false
	}
	return v.Parent() == v.Pkg().Scope()
}

// isWrite checks if the identifier on top of the stack is an assignment target.
func isWrite(id *ast.Ident, stack []ast.Node) bool {
	if len(stack) < 2 {
		return false
	}

	var target ast.Expr = id
	parent := stack[len(stack)-2]
	// Both pkg.V = x and v.Field = x.
	if sel, ok := parent.(*ast.SelectorExpr); ok {
		if len(stack) < 3 {
			return false
		}
		target = sel
		parent = stack[len(stack)-3]
	}

	switch p := parent.(type) {
	case *ast.AssignStmt:
		for _, lhs := range p.Lhs {
			if lhs == target {
				return true
			}
		}
	case *ast.IncDecStmt:
		return p.X == target
	}

	return false
}
