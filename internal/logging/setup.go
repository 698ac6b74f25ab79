package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/isseis/go-env-sanity/internal/safefileio"
	"github.com/isseis/go-env-sanity/internal/terminal"
)

const (
	// File permissions for log files
	logFilePerm = 0o600

	logSchemaVersion = 1
	timestampFormat  = "20060102T150405Z"

	unknownHostFallback = "unknown-host"
)

// LoggerConfig holds all configuration for logger setup
type LoggerConfig struct {
	// Level gates the JSON log. Diagnostics on Writer use Level but never
	// drop warnings; see DiagnosticLevel.
	Level  slog.Level
	LogDir string // empty: no JSON log file
	RunID  string

	// Writer receives diagnostics, normally os.Stderr
	Writer       io.Writer
	Capabilities terminal.Capabilities

	// Now and Hostname default to time.Now and os.Hostname
	Now      func() time.Time
	Hostname func() (string, error)
}

// Logger is the configured slog.Logger plus the run log file, if any.
type Logger struct {
	*slog.Logger

	// Path is the JSON log file path, empty when file logging is off.
	Path string
	file *os.File
}

// Close closes the run log file. It is safe to call on a Logger without one.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// DiagnosticLevel is the stderr threshold for a configured level. It can be
// lowered below WARN for more detail but never raised above it, so warnings
// such as a black-listed white list entry always reach the error stream.
func DiagnosticLevel(configured slog.Level) slog.Level {
	return min(configured, slog.LevelWarn)
}

// Setup builds the handler chain: diagnostics on cfg.Writer and, when
// cfg.LogDir is set, a JSON log file named after host, time and run ID.
func Setup(cfg LoggerConfig) (*Logger, error) {
	diag, err := NewDiagnosticHandler(DiagnosticHandlerOptions{
		Level:        DiagnosticLevel(cfg.Level),
		Writer:       cfg.Writer,
		Capabilities: cfg.Capabilities,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create diagnostic handler: %w", err)
	}

	if cfg.LogDir == "" {
		return &Logger{Logger: slog.New(diag)}, nil
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	hostname := resolveHostname(cfg.Hostname)

	logPath := filepath.Join(cfg.LogDir, fmt.Sprintf("%s_%s_%s.json", hostname, now().UTC().Format(timestampFormat), cfg.RunID))
	logF, err := safefileio.OpenForWrite(logPath, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	jsonHandler := slog.NewJSONHandler(logF, &slog.HandlerOptions{
		Level: cfg.Level,
	}).WithAttrs([]slog.Attr{
		slog.String("hostname", hostname),
		slog.Int("pid", os.Getpid()),
		slog.Int("schema_version", logSchemaVersion),
		slog.String("run_id", cfg.RunID),
	})

	return &Logger{
		Logger: slog.New(NewMultiHandler(diag, jsonHandler)),
		Path:   logPath,
		file:   logF,
	}, nil
}

func resolveHostname(fn func() (string, error)) string {
	if fn == nil {
		fn = os.Hostname
	}
	name, err := fn()
	if err != nil || name == "" {
		return unknownHostFallback
	}
	return name
}
