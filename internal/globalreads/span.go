package globalreads

import (
	"cmp"
	"go/token"
	"slices"

	"github.com/sirkon/rbtree"
)

// trackedScope is a function whose body is traced.
type trackedScope struct {
	name string
}

// scopeSpan stores a [start,end] span of a tracked function and, if needed,
// a nested RB-tree for child spans fully contained in this span.
type scopeSpan struct {
	start token.Pos
	end   token.Pos

	scope    *trackedScope
	children *rbtree.Tree[*scopeSpan]
}

// Cmp defines ordering for the RB-tree as "disjoint by position".
// - return -1 if this span is strictly before other
// - return  1 if this span is strictly after  other
// - return  0 if spans overlap in any way (including containment).
//
// Spans of functions either nest or are disjoint, so 0 always means containment.
func (n *scopeSpan) Cmp(other *scopeSpan) int {
	if n.end < other.start {
		return -1
	}
	if n.start > other.end {
		return 1
	}
	return 0
}

func contains(a, b *scopeSpan) bool {
	return a.start <= b.start && a.end >= b.end
}

// scopeIndex resolves a position into the innermost tracked function covering it.
type scopeIndex struct {
	pending []*scopeSpan
	tree    *rbtree.Tree[*scopeSpan]
}

func newScopeIndex() *scopeIndex {
	return &scopeIndex{tree: rbtree.New[*scopeSpan]()}
}

// add schedules a span. Spans become searchable after build.
func (x *scopeIndex) add(scope *trackedScope, start, end token.Pos) {
	x.pending = append(x.pending, &scopeSpan{start: start, end: end, scope: scope})
}

// build inserts pending spans outermost first, so that a new span never
// contains an already inserted sibling.
func (x *scopeIndex) build() {
	slices.SortFunc(x.pending, func(a, b *scopeSpan) int {
		return cmp.Or(cmp.Compare(a.start, b.start), cmp.Compare(b.end, a.end))
	})
	for _, s := range x.pending {
		attachInto(x.tree, s)
	}
	x.pending = nil
}

// lookup returns the innermost scope covering pos, or nil.
func (x *scopeIndex) lookup(pos token.Pos) *trackedScope {
	res := x.tree.Search(&scopeSpan{start: pos, end: pos})
	if res == nil {
		return nil
	}
	return descendSearch(res, pos)
}

// attachInto inserts span s into RB-tree t, using the following containment rules:
//   - If t has no overlapping node, s is inserted as a sibling in t.
//   - If an overlapping node r exists and s contains r, mutate r in-place to become s
//     and re-attach the old r as a child of the new s.
//   - If r contains s, recursively attach s into r.children.
func attachInto(t *rbtree.Tree[*scopeSpan], s *scopeSpan) {
	r := t.InsertReturn(s)
	if r == s {
		return
	}

	if contains(s, r) {
		old := *r
		*r = *s

		if r.children == nil {
			r.children = rbtree.New[*scopeSpan]()
		}
		attachInto(r.children, &old)
		return
	}

	if contains(r, s) {
		if r.children == nil {
			r.children = rbtree.New[*scopeSpan]()
		}
		attachInto(r.children, s)
		return
	}

	panic("attachInto: partial-overlap spans are not supported")
}

func descendSearch(n *scopeSpan, pos token.Pos) *trackedScope {
	if n.children == nil {
		return n.scope
	}
	child := n.children.Search(&scopeSpan{start: pos, end: pos})
	if child == nil {
		return n.scope
	}
	if v := descendSearch(child, pos); v != nil {
		return v
	}
	return n.scope
}
