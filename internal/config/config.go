// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads credcheck server configuration from a YAML file and
// command-line flags.
package config

import (
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/credcheck/internal/logging"
)

// Default values for configuration keys.
const (
	DefaultListenAddr      = "127.0.0.1:8080"
	DefaultMetricsAddr     = "127.0.0.1:9100"
	DefaultLogFormat       = "json"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds configuration for the validation server.
type Config struct {
	ListenAddr      string        `koanf:"listen_addr"`
	MetricsAddr     string        `koanf:"metrics_addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Log             LogConfig     `koanf:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		ListenAddr:      DefaultListenAddr,
		MetricsAddr:     DefaultMetricsAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
		Log: LogConfig{
			Format: DefaultLogFormat,
			Level:  DefaultLogLevel,
		},
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"listen-addr":      "listen_addr",
	"metrics-addr":     "metrics_addr",
	"shutdown-timeout": "shutdown_timeout",
	"log-format":       "log.format",
	"log-level":        "log.level",
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String("listen-addr", DefaultListenAddr, "validation API listen address")
	fs.String("metrics-addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	fs.Duration("shutdown-timeout", DefaultShutdownTimeout, "graceful shutdown timeout")
	fs.String("log-format", DefaultLogFormat, "log format (json or text)")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
}

// Load builds a Config from the YAML file at path (skipped when empty) and
// then the flags in fs (skipped when nil). Changed flags override the file;
// flag defaults only fill keys the file leaves unset.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, f.Value.String()
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").
				With("source", "flags").
				Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_LOAD_FAILED").
			With("operation", "unmarshal").
			Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (cfg Config) Validate() error {
	if cfg.ListenAddr == "" {
		return oops.Code("CONFIG_INVALID").
			With("key", "listen_addr").
			Errorf("listen_addr is required")
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").
			With("key", "log.format").
			Errorf("log.format must be 'json' or 'text', got %q", cfg.Log.Format)
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return oops.Code("CONFIG_INVALID").
			With("key", "log.level").
			Errorf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level)
	}
	if cfg.ShutdownTimeout <= 0 {
		return oops.Code("CONFIG_INVALID").
			With("key", "shutdown_timeout").
			Errorf("shutdown_timeout must be positive, got %s", cfg.ShutdownTimeout)
	}
	return nil
}

// LogOptions returns logging options for the given service and version.
func (cfg Config) LogOptions(service, version string) logging.Options {
	return logging.Options{
		Service: service,
		Version: version,
		Format:  cfg.Log.Format,
		Level:   cfg.Log.Level,
	}
}
