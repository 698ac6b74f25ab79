// Package config loads the optional tool configuration file. It controls
// only how environment-sanity itself reports; the per-program list files
// are handled by envlist.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/isseis/go-env-sanity/internal/safefileio"
	"github.com/pelletier/go-toml/v2"
)

// DefaultLogLevel keeps a successful run silent.
const DefaultLogLevel = "warn"

// Error definitions for the config package
var (
	ErrInvalidLogLevel = errors.New("invalid log level - valid options are: debug, info, warn, error")
)

// Config is the root of config.toml.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
}

// LoggingConfig is the [logging] table.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
	// Dir, if set, receives one JSON log file per run.
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Logging: LoggingConfig{Level: DefaultLogLevel}}
}

// levels are the only accepted names. slog.Level.UnmarshalText would also
// take offsets such as "warn+3".
var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel converts the configured level.
func (c *LoggingConfig) SlogLevel() (slog.Level, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(c.Level))]
	if !ok {
		return slog.LevelWarn, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Level)
	}
	return level, nil
}

// Loader reads config.toml.
type Loader struct {
	exists   func(path string) bool
	readFile func(path string) ([]byte, error)
}

// NewLoader creates a loader backed by safefileio.
func NewLoader() *Loader {
	return &Loader{
		exists:   safefileio.IsRegularFile,
		readFile: safefileio.ReadFile,
	}
}

// Load returns the configuration at path, or Default if path is not a
// regular file. Unknown keys and invalid levels are errors.
func (l *Loader) Load(path string) (*Config, error) {
	if !l.exists(path) {
		return Default(), nil
	}

	content, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return Parse(content)
}

// Parse decodes TOML content on top of the defaults.
func Parse(content []byte) (*Config, error) {
	cfg := Default()

	decoder := toml.NewDecoder(bytes.NewReader(content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("failed to parse config: unknown keys:\n%s", strictErr.String())
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if _, err := cfg.Logging.SlogLevel(); err != nil {
		return nil, err
	}

	return cfg, nil
}
