// Package render prints recorded graphs as text, YAML or Graphviz DOT.
package render
