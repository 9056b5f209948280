package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mindala.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %s", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		want *Config
	}{
		{
			name: "defaults",
			want: Default(),
		},
		{
			name: "empty file",
			file: "",
			env:  map[string]string{},
			want: Default(),
		},
		{
			name: "file",
			file: `
log:
  level: debug
  format: json
tracer:
  unwind_on_panic: false
output:
  format: yaml
  summary: true
`,
			want: &Config{
				Log:    Log{Level: zapcore.DebugLevel, Format: LogFormatJSON},
				Tracer: Tracer{UnwindOnPanic: false},
				Output: Output{Format: OutputFormatYAML, Summary: true},
			},
		},
		{
			name: "environment over file",
			file: `
output:
  format: yaml
`,
			env: map[string]string{
				"MINDALA_OUTPUT_FORMAT":   "dot",
				"MINDALA_LOG_LEVEL":       "warn",
				"MINDALA_UNWIND_ON_PANIC": "false",
				"MINDALA_SUMMARY":         "true",
			},
			want: &Config{
				Log:    Log{Level: zapcore.WarnLevel, Format: LogFormatConsole},
				Tracer: Tracer{UnwindOnPanic: false},
				Output: Output{Format: OutputFormatDOT, Summary: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			if tt.file != "" || tt.env != nil {
				path = writeConfig(t, tt.file)
			}

			got, err := Load(context.Background(), path, envconfig.MapLookuper(tt.env))
			if err != nil {
				t.Fatalf("load config: %s", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown field",
			file:    "output:\n  colour: red\n",
			wantErr: "decode config file",
		},
		{
			name:    "unknown output format",
			file:    "output:\n  format: svg\n",
			wantErr: `unknown output format "svg"`,
		},
		{
			name:    "unknown env log format",
			env:     map[string]string{"MINDALA_LOG_FORMAT": "xml"},
			wantErr: "apply environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file)
			_, err := Load(context.Background(), path, envconfig.MapLookuper(tt.env))
			if err == nil {
				t.Fatal("error was expected")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error containing %q was expected, got %q", tt.wantErr, err)
			}
		})
	}

	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatal("error was expected for a missing file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = OutputFormatInvalid
	cfg.Log.Format = LogFormatInvalid

	err := cfg.Validate()
	if err == nil {
		t.Fatal("error was expected")
	}
	for _, part := range []string{"invalid output format invalid(0)", "invalid log format invalid(0)"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error must mention %q, got %q", part, err)
		}
	}
}

func TestOutputFormatText(t *testing.T) {
	for format, text := range outputFormatValueMap {
		var got OutputFormat
		if err := got.Set(text); err != nil {
			t.Fatalf("set %q: %s", text, err)
		}
		if got != format {
			t.Fatalf("%s was expected, got %s", format, got)
		}
		raw, err := got.MarshalText()
		if err != nil || string(raw) != text {
			t.Fatalf("marshal %s: %q, %v", format, raw, err)
		}
	}

	if _, err := OutputFormatInvalid.MarshalText(); err == nil {
		t.Fatal("invalid format must not marshal")
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []LogFormat{LogFormatConsole, LogFormatJSON} {
		log, err := Log{Level: zapcore.ErrorLevel, Format: format}.NewLogger()
		if err != nil {
			t.Fatalf("build %s logger: %s", format, err)
		}
		if log.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("%s logger must not be enabled for info", format)
		}
		_ = log.Sync()
	}
}
