// Package terminal detects whether diagnostics go to an interactive
// terminal and whether that terminal should receive ANSI colors.
//
// Detection reads variables through a LookupFunc instead of os.Getenv.
// Callers pass the startup snapshot so that detection sees the same inherited
// environment as the rest of the run.
package terminal

import "strings"

// LookupFunc returns the value of an environment variable and whether it is set.
type LookupFunc func(name string) (string, bool)

// Options contains all terminal-related configuration options
type Options struct {
	// Fd is the descriptor diagnostics are written to, normally stderr.
	Fd uintptr
	// Lookup reads environment variables. Nil means nothing is set.
	Lookup LookupFunc
	// IsTerminal overrides descriptor detection; used by tests.
	IsTerminal func(fd uintptr) bool
}

// Capabilities provides a unified interface for terminal capability detection
type Capabilities interface {
	IsInteractive() bool
	SupportsColor() bool
}

// DefaultCapabilities combines interactive detection, TERM based color
// detection and the NO_COLOR / CLICOLOR_FORCE user preferences.
type DefaultCapabilities struct {
	detector   *InteractiveDetector
	preference UserPreference
	lookup     LookupFunc
}

// NewCapabilities creates a new Capabilities instance with the given options
func NewCapabilities(options Options) *DefaultCapabilities {
	lookup := options.Lookup
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	return &DefaultCapabilities{
		detector:   newInteractiveDetector(options.Fd, lookup, options.IsTerminal),
		preference: UserPreference{lookup: lookup},
		lookup:     lookup,
	}
}

// IsInteractive returns true if diagnostics go to a terminal outside CI.
func (c *DefaultCapabilities) IsInteractive() bool {
	return c.detector.IsInteractive()
}

// SupportsColor applies, in order: CLICOLOR_FORCE, NO_COLOR, interactivity
// and TERM, then CLICOLOR.
func (c *DefaultCapabilities) SupportsColor() bool {
	if explicit, enabled := c.preference.Explicit(); explicit {
		return enabled
	}

	if !c.IsInteractive() || !termSupportsColor(c.lookup) {
		return false
	}

	if cliColor, ok := c.lookup("CLICOLOR"); ok && cliColor != "" {
		return isTruthy(cliColor)
	}

	return true
}

// isTruthy checks if a string value should be considered "true"
// Supports: "1", "true", "yes" (case insensitive)
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
