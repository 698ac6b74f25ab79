package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/isseis/go-env-sanity/internal/terminal"
)

// DiagnosticPrefix starts every line the wrapper writes to stderr.
const DiagnosticPrefix = "environment-sanity"

// ErrDiagnosticWriterRequired is returned when no writer is configured.
var ErrDiagnosticWriterRequired = errors.New("DiagnosticHandler: Writer is required")

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
)

// DiagnosticHandlerOptions configures the DiagnosticHandler.
type DiagnosticHandlerOptions struct {
	// Level is the minimum log level to handle
	Level slog.Leveler

	// Writer is the output destination, normally os.Stderr
	Writer io.Writer

	// Capabilities decides whether the level tag is colored. Nil means never.
	Capabilities terminal.Capabilities
}

// DiagnosticHandler writes one line per record:
//
//	environment-sanity:WARN: message key=value ...
type DiagnosticHandler struct {
	mu       *sync.Mutex
	writer   io.Writer
	level    slog.Leveler
	useColor bool
	prefix   string // accumulated attributes, already formatted
	groups   []string
}

// NewDiagnosticHandler creates a DiagnosticHandler.
func NewDiagnosticHandler(opts DiagnosticHandlerOptions) (*DiagnosticHandler, error) {
	if opts.Writer == nil {
		return nil, ErrDiagnosticWriterRequired
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelWarn
	}
	useColor := opts.Capabilities != nil && opts.Capabilities.SupportsColor()
	return &DiagnosticHandler{
		mu:       &sync.Mutex{},
		writer:   opts.Writer,
		level:    level,
		useColor: useColor,
	}, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *DiagnosticHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats the record and writes it with a single Write call.
func (h *DiagnosticHandler) Handle(_ context.Context, r slog.Record) error {
	if isFatalRecord(r) {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(DiagnosticPrefix)
	sb.WriteByte(':')
	sb.WriteString(h.levelTag(r.Level))
	sb.WriteString(": ")
	sb.WriteString(r.Message)
	sb.WriteString(h.prefix)

	group := h.groupPrefix()
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, group, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, sb.String())
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *DiagnosticHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var sb strings.Builder
	sb.WriteString(h.prefix)
	group := h.groupPrefix()
	for _, a := range attrs {
		appendAttr(&sb, group, a)
	}
	clone := *h
	clone.prefix = sb.String()
	return &clone
}

// WithGroup returns a new handler with an additional group.
func (h *DiagnosticHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func isFatalRecord(r slog.Record) bool {
	fatal := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == messageTypeKey && a.Value.String() == fatalMessageType {
			fatal = true
			return false
		}
		return true
	})
	return fatal
}

func (h *DiagnosticHandler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

func (h *DiagnosticHandler) levelTag(level slog.Level) string {
	tag := level.String()
	if !h.useColor {
		return tag
	}
	switch {
	case level >= slog.LevelError:
		return ansiRed + tag + ansiReset
	case level >= slog.LevelWarn:
		return ansiYellow + tag + ansiReset
	case level >= slog.LevelInfo:
		return ansiCyan + tag + ansiReset
	default:
		return ansiGray + tag + ansiReset
	}
}

func appendAttr(sb *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := group
		if a.Key != "" {
			inner += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(sb, inner, ga)
		}
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(group)
	sb.WriteString(a.Key)
	sb.WriteByte('=')
	sb.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindTime {
		s = v.Time().Format(time.RFC3339)
	}
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		if r == ' ' || r == '=' || r == '"' || !strconv.IsPrint(r) {
			return true
		}
	}
	return false
}
