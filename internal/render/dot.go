package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/sirkon/mindala/tracer"
)

// DOT prints edges as a Graphviz digraph. Calls are solid edges between frames,
// global reads are dashed edges into "global:KEY" boxes.
func DOT(w io.Writer, edges []tracer.EdgeCount) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph mindala {")
	fmt.Fprintln(bw, "  node [shape=ellipse];")

	globals := map[string]bool{}
	for _, e := range edges {
		if e.Kind == tracer.EdgeGlobal && !globals[e.Target] {
			globals[e.Target] = true
			fmt.Fprintf(bw, "  %s [shape=box];\n", strconv.Quote("global:"+e.Target))
		}
	}

	for _, e := range edges {
		var attrs []string
		to := e.Target
		if e.Kind == tracer.EdgeGlobal {
			to = "global:" + e.Target
			attrs = append(attrs, "style=dashed")
		}
		if e.Count > 1 {
			attrs = append(attrs, "label="+strconv.Quote("x"+strconv.Itoa(e.Count)))
		}

		fmt.Fprintf(bw, "  %s -> %s", strconv.Quote(e.Caller.String()), strconv.Quote(to))
		for i, attr := range attrs {
			if i == 0 {
				fmt.Fprint(bw, " [")
			} else {
				fmt.Fprint(bw, ", ")
			}
			fmt.Fprint(bw, attr)
		}
		if len(attrs) > 0 {
			fmt.Fprint(bw, "]")
		}
		fmt.Fprintln(bw, ";")
	}

	fmt.Fprintln(bw, "}")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write dot: %w", err)
	}
	return nil
}
