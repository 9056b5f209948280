package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/mindala/tracer"
)

type yamlFrame struct {
	Module   string `yaml:"module"`
	QualName string `yaml:"qual_name"`
}

type yamlGlobal struct {
	Key   string `yaml:"key"`
	Value any    `yaml:"value"`
}

type yamlEntry struct {
	Caller yamlFrame   `yaml:"caller"`
	Call   *yamlFrame  `yaml:"call,omitempty"`
	Global *yamlGlobal `yaml:"global,omitempty"`
}

type yamlEdge struct {
	Caller yamlFrame `yaml:"caller"`
	Kind   string    `yaml:"kind"`
	Target string    `yaml:"target"`
	Count  int       `yaml:"count"`
}

// YAML prints graph as a YAML sequence.
func YAML(w io.Writer, graph []tracer.GraphEntry) error {
	doc := make([]yamlEntry, 0, len(graph))
	for _, e := range graph {
		item := yamlEntry{
			Caller: yamlFrame{Module: e.CallerModule, QualName: e.CallerQualName},
		}

		switch op := e.Op.(type) {
		case tracer.GraphCall:
			item.Call = &yamlFrame{Module: op.Module, QualName: op.QualName}
		case tracer.GraphGlobal:
			item.Global = &yamlGlobal{Key: op.Key, Value: op.Value}
		default:
			return fmt.Errorf("unsupported graph operation %T", e.Op)
		}

		doc = append(doc, item)
	}

	return encodeYAML(w, doc)
}

// YAMLSummary prints distinct edges as a YAML sequence.
func YAMLSummary(w io.Writer, edges []tracer.EdgeCount) error {
	doc := make([]yamlEdge, 0, len(edges))
	for _, e := range edges {
		doc = append(doc, yamlEdge{
			Caller: yamlFrame{Module: e.Caller.Module, QualName: e.Caller.QualName},
			Kind:   e.Kind.String(),
			Target: e.Target,
			Count:  e.Count,
		})
	}

	return encodeYAML(w, doc)
}

func encodeYAML(w io.Writer, doc any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush yaml: %w", err)
	}

	return nil
}

// ParseYAML reads a graph printed by [YAML].
func ParseYAML(data []byte) ([]tracer.GraphEntry, error) {
	var doc []yamlEntry
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal graph: %w", err)
	}

	graph := make([]tracer.GraphEntry, 0, len(doc))
	for i, item := range doc {
		e := tracer.GraphEntry{
			CallerModule:   item.Caller.Module,
			CallerQualName: item.Caller.QualName,
		}

		switch {
		case item.Call != nil && item.Global == nil:
			e.Op = tracer.GraphCall{Module: item.Call.Module, QualName: item.Call.QualName}
		case item.Global != nil && item.Call == nil:
			e.Op = tracer.GraphGlobal{Key: item.Global.Key, Value: item.Global.Value}
		default:
			return nil, fmt.Errorf("entry %d must have exactly one of call or global", i)
		}

		graph = append(graph, e)
	}

	return graph, nil
}
