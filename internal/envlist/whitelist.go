package envlist

import (
	"log/slog"

	"github.com/isseis/go-env-sanity/internal/envvar"
)

// WhiteList is the set of names allowed to pass through from the inherited
// environment. It is bound to the black list it was built against.
type WhiteList struct {
	names  nameSet
	black  *BlackList
	logger *slog.Logger
}

// WhiteListOption configures a WhiteList.
type WhiteListOption func(*WhiteList)

// WithLogger sets the logger used for black list collision warnings.
func WithLogger(logger *slog.Logger) WhiteListOption {
	return func(w *WhiteList) {
		w.logger = logger
	}
}

// NewWhiteList creates a white list seeded with defaults. A default that is
// already black-listed is a *DefaultCollisionError.
func NewWhiteList(black *BlackList, defaults []envvar.Name, opts ...WhiteListOption) (*WhiteList, error) {
	w := &WhiteList{
		names:  newNameSet(len(defaults) + 64),
		black:  black,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, n := range defaults {
		if black.Contains(n) {
			return nil, &DefaultCollisionError{Name: n}
		}
		w.names.add(n)
	}
	return w, nil
}

// AddFromFile adds every non-empty record of a linefeed-separated file as a
// name. A name that is black-listed is logged as a warning and skipped; it
// does not fail the load.
func (w *WhiteList) AddFromFile(path string) error {
	return forEachName(KindWhite, path, func(name envvar.Name, record int) {
		if w.black.Contains(name) {
			w.logger.Warn("Black list contains environment variable white listed in file; ignoring it (all offsets are zero-based)",
				"variable", name.String(),
				"file", path,
				"record", record)
			return
		}
		w.names.add(name)
	})
}

// Contains reports whether name is white-listed.
func (w *WhiteList) Contains(name envvar.Name) bool {
	return w.names.contains(name)
}

// Len returns the number of white-listed names.
func (w *WhiteList) Len() int {
	return len(w.names)
}

// Names returns the white-listed names in byte order.
func (w *WhiteList) Names() []envvar.Name {
	return w.names.sorted()
}

// FilterEnvironment returns the entries of env whose name is not
// black-listed and is white-listed. env is not modified.
func (w *WhiteList) FilterEnvironment(env envvar.Environment) envvar.Environment {
	out := make(envvar.Environment, len(w.names))
	for name, value := range env {
		if w.black.Contains(name) {
			continue
		}
		if !w.Contains(name) {
			continue
		}
		out[name] = value
	}

	w.logger.Debug("Filtered inherited environment",
		"total_vars", len(env),
		"filtered_vars", len(out))

	return out
}
