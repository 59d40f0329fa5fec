// Package config loads settings for the btctx command.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// BTCTX_* environment variables.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/suffix-labs/btctx/pkg/api"
	"github.com/suffix-labs/btctx/pkg/wire"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "BTCTX"

const (
	DefaultFormat   = string(api.FormatJSON)
	DefaultLogLevel = "info"
)

type ctxKey string

const configContextKey ctxKey = "config"

// WithContext returns a copy of ctx carrying cfg.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

// FromContext returns the Config stored by WithContext, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

// Config holds the CLI settings.
type Config struct {
	Format           string `yaml:"format"           envconfig:"BTCTX_FORMAT"`
	MaxInputs        uint64 `yaml:"maxInputs"        envconfig:"BTCTX_MAX_INPUTS"`
	RequireCanonical bool   `yaml:"requireCanonical" envconfig:"BTCTX_REQUIRE_CANONICAL"`
	LogLevel         string `yaml:"logLevel"         envconfig:"BTCTX_LOG_LEVEL"`
	PrettyLogs       bool   `yaml:"prettyLogs"       envconfig:"BTCTX_PRETTY_LOGS"`
}

// Default returns a Config with built-in defaults. Hardening checks are off.
func Default() *Config {
	return &Config{
		Format:     DefaultFormat,
		LogLevel:   DefaultLogLevel,
		PrettyLogs: true,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		// An empty file decodes to io.EOF and leaves the defaults alone.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the format and log level are known.
func (c *Config) Validate() error {
	if _, err := api.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// OutputFormat returns the configured format. It assumes Validate passed.
func (c *Config) OutputFormat() api.Format {
	f, _ := api.ParseFormat(c.Format)
	return f
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// DecodeOptions returns the wire hardening options selected by c.
func (c *Config) DecodeOptions() wire.DecodeOptions {
	return wire.DecodeOptions{
		RequireCanonical: c.RequireCanonical,
		MaxInputs:        c.MaxInputs,
	}
}
