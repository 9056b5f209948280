package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the root of mindala settings.
type Config struct {
	Log    Log    `yaml:"log"`
	Tracer Tracer `yaml:"tracer"`
	Output Output `yaml:"output"`
}

// Log configures the zap logger of the tool.
type Log struct {
	Level  zapcore.Level `yaml:"level" env:"MINDALA_LOG_LEVEL, overwrite"`
	Format LogFormat     `yaml:"format" env:"MINDALA_LOG_FORMAT, overwrite"`
}

// Tracer configures tracers created by the tool.
type Tracer struct {
	// UnwindOnPanic pops frames of panicking traced calls.
	UnwindOnPanic bool `yaml:"unwind_on_panic" env:"MINDALA_UNWIND_ON_PANIC, overwrite"`
}

// Output configures how graphs are printed.
type Output struct {
	Format  OutputFormat `yaml:"format" env:"MINDALA_OUTPUT_FORMAT, overwrite"`
	Summary bool         `yaml:"summary" env:"MINDALA_SUMMARY, overwrite"`
}

// Default returns settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:  zapcore.InfoLevel,
			Format: LogFormatConsole,
		},
		Tracer: Tracer{
			UnwindOnPanic: true,
		},
		Output: Output{
			Format: OutputFormatText,
		},
	}
}

// Load builds settings from defaults, the YAML file at path (if not empty) and
// environment variables found by lookuper. A nil lookuper means the process environment.
func Load(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := cfg.decodeYAML(data); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// Validate checks enumerations are set to known values.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := outputFormatValueMap[c.Output.Format]; !ok {
		errs = append(errs, fmt.Errorf("invalid output format %s", c.Output.Format))
	}
	if _, ok := logFormatValueMap[c.Log.Format]; !ok {
		errs = append(errs, fmt.Errorf("invalid log format %s", c.Log.Format))
	}

	return errors.Join(errs...)
}

// NewLogger builds a zap logger according to the settings.
func (l Log) NewLogger() (*zap.Logger, error) {
	var cfg zap.Config
	switch l.Format {
	case LogFormatJSON:
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(l.Level)

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return log, nil
}
