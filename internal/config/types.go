package config

import (
	"fmt"
)

// OutputFormat describes how recorded graphs are printed.
type OutputFormat int

const (
	OutputFormatInvalid OutputFormat = iota

	// OutputFormatText prints one entry per line.
	OutputFormatText

	// OutputFormatYAML prints a YAML document.
	OutputFormatYAML

	// OutputFormatDOT prints a Graphviz digraph.
	OutputFormatDOT
)

var outputFormatValueMap = map[OutputFormat]string{
	OutputFormatText: "text",
	OutputFormatYAML: "yaml",
	OutputFormatDOT:  "dot",
}

func (f OutputFormat) String() string {
	v, ok := outputFormatValueMap[f]
	if !ok {
		return fmt.Sprintf("invalid(%d)", f)
	}

	return v
}

// UnmarshalText for setting values with configs, CLI, etc.
func (f *OutputFormat) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range outputFormatValueMap {
		if v == text {
			*f = k
			return nil
		}
	}

	return fmt.Errorf("unknown output format %q", text)
}

// MarshalText is needed to write configs back.
func (f OutputFormat) MarshalText() ([]byte, error) {
	v, ok := outputFormatValueMap[f]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid OutputFormat(%d)", f)
	}

	return []byte(v), nil
}

// Set implements pflag.Value.
func (f *OutputFormat) Set(s string) error {
	return f.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (f *OutputFormat) Type() string {
	return "format"
}

// LogFormat selects the zap encoder preset.
type LogFormat int

const (
	LogFormatInvalid LogFormat = iota
	LogFormatConsole
	LogFormatJSON
)

var logFormatValueMap = map[LogFormat]string{
	LogFormatConsole: "console",
	LogFormatJSON:    "json",
}

func (f LogFormat) String() string {
	v, ok := logFormatValueMap[f]
	if !ok {
		return fmt.Sprintf("invalid(%d)", f)
	}

	return v
}

func (f *LogFormat) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range logFormatValueMap {
		if v == text {
			*f = k
			return nil
		}
	}

	return fmt.Errorf("unknown log format %q", text)
}

func (f LogFormat) MarshalText() ([]byte, error) {
	v, ok := logFormatValueMap[f]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid LogFormat(%d)", f)
	}

	return []byte(v), nil
}
