package terminal

import "strings"

// colorTerminals lists TERM values (or prefixes) that are known to support
// basic terminal colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"vt220",
	"ansi",
	"linux",
	"cygwin",
	"putty",
}

// termSupportsColor checks TERM. Unknown terminals get no color.
func termSupportsColor(lookup LookupFunc) bool {
	value, _ := lookup("TERM")
	t := strings.ToLower(strings.TrimSpace(value))
	if t == "" || t == "dumb" {
		return false
	}

	for _, colorTerm := range colorTerminals {
		if t == colorTerm || strings.HasPrefix(t, colorTerm+"-") {
			return true
		}
	}
	return false
}

// UserPreference reads the NO_COLOR and CLICOLOR_FORCE conventions.
type UserPreference struct {
	lookup LookupFunc
}

// Explicit reports whether the user expressed a color preference and, if so,
// whether color is enabled. CLICOLOR_FORCE (when truthy) beats NO_COLOR;
// NO_COLOR counts even when empty.
func (p UserPreference) Explicit() (explicit, enabled bool) {
	if force, ok := p.lookup("CLICOLOR_FORCE"); ok && isTruthy(force) {
		return true, true
	}
	if _, ok := p.lookup("NO_COLOR"); ok {
		return true, false
	}
	return false, false
}
