package render

import (
	"fmt"
	"io"

	"github.com/sirkon/mindala/internal/config"
	"github.com/sirkon/mindala/tracer"
)

// Write prints graph in the given format. With summary set, repeated edges are
// collapsed and annotated with their counts.
func Write(w io.Writer, format config.OutputFormat, graph []tracer.GraphEntry, summary bool) error {
	switch format {
	case config.OutputFormatText:
		if summary {
			return TextSummary(w, tracer.Summarize(graph))
		}
		return Text(w, graph)
	case config.OutputFormatYAML:
		if summary {
			return YAMLSummary(w, tracer.Summarize(graph))
		}
		return YAML(w, graph)
	case config.OutputFormatDOT:
		return DOT(w, tracer.Summarize(graph))
	default:
		return fmt.Errorf("unsupported output format %s", format)
	}
}

// Text prints entries one per line, numbered in recording order.
func Text(w io.Writer, graph []tracer.GraphEntry) error {
	for i, e := range graph {
		if _, err := fmt.Fprintf(w, "%3d  %s\n", i, e); err != nil {
			return fmt.Errorf("write entry %d: %w", i, err)
		}
	}

	return nil
}

// TextSummary prints distinct edges with their counts.
func TextSummary(w io.Writer, edges []tracer.EdgeCount) error {
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "%s -> %s %s x%d\n", e.Caller, e.Kind, e.Target, e.Count); err != nil {
			return fmt.Errorf("write edge: %w", err)
		}
	}

	return nil
}
