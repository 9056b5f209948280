package tracer

import (
	"cmp"
	"fmt"

	"github.com/sirkon/rbtree"
)

// EdgeKind tells call edges from global-read edges.
type EdgeKind int

const (
	edgeKindInvalid EdgeKind = iota
	EdgeCall
	EdgeGlobal
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeCall:
		return "call"
	case EdgeGlobal:
		return "global"
	default:
		return fmt.Sprintf("edge-kind-invalid(%d)", k)
	}
}

// EdgeCount is a distinct edge of a graph with the number of times it was recorded.
type EdgeCount struct {
	Caller StackEntry
	Kind   EdgeKind

	// Target is "module.QualName" of the callee for calls and the key for globals.
	Target string
	Count  int
}

// edgeNode is an index entry. It points into the summary slice, so that the
// summary keeps first-seen order while the tree handles deduplication.
type edgeNode struct {
	caller StackEntry
	kind   EdgeKind
	target string
	index  int
}

func (n *edgeNode) Cmp(other *edgeNode) int {
	return cmp.Or(
		cmp.Compare(n.caller.Module, other.caller.Module),
		cmp.Compare(n.caller.QualName, other.caller.QualName),
		cmp.Compare(n.kind, other.kind),
		cmp.Compare(n.target, other.target),
	)
}

// Summarize collapses repeated edges of graph. The result is in first-seen order.
func Summarize(graph []GraphEntry) []EdgeCount {
	tree := rbtree.New[*edgeNode]()

	var out []EdgeCount
	for _, e := range graph {
		probe := &edgeNode{
			caller: e.Caller(),
			index:  len(out),
		}

		switch op := e.Op.(type) {
		case GraphCall:
			probe.kind = EdgeCall
			probe.target = op.Module + "." + op.QualName
		case GraphGlobal:
			probe.kind = EdgeGlobal
			probe.target = op.Key
		default:
			continue
		}

		if got := tree.InsertReturn(probe); got != probe {
			out[got.index].Count++
			continue
		}

		out = append(out, EdgeCount{
			Caller: probe.caller,
			Kind:   probe.kind,
			Target: probe.target,
			Count:  1,
		})
	}

	return out
}
