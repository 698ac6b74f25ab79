package envvar

import (
	"slices"
	"strings"
)

// Environment maps names to values. It is the in-memory form of a process
// environment.
type Environment map[Name]Value

// Snapshot converts entries in the KEY=VALUE form returned by os.Environ
// into an Environment. An entry is split at its first '='; entries without
// '=' or with an empty key are skipped. When a key repeats, the last entry
// wins. glibc and musl getenv return the first match instead, so a program
// launched without the wrapper could see a different value for that key.
func Snapshot(environ []string) Environment {
	env := make(Environment, len(environ))
	for _, kv := range environ {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}
		// os.Environ never yields NUL, so the checked constructors are not
		// needed here.
		env[Name{raw: key}] = Value{raw: value}
	}
	return env
}

// Lookup returns the value for name and whether it was present.
func (e Environment) Lookup(name Name) (Value, bool) {
	v, ok := e[name]
	return v, ok
}

// LookupString is Lookup keyed by a Go string. It is convenient for callers
// that only need to inspect well-known variables such as PATH or TERM.
func (e Environment) LookupString(name string) (string, bool) {
	v, ok := e[Name{raw: name}]
	return v.raw, ok
}

// Names returns the names in byte order.
func (e Environment) Names() []Name {
	names := make([]Name, 0, len(e))
	for k := range e {
		names = append(names, k)
	}
	SortNames(names)
	return names
}

// Environ renders the environment as KEY=VALUE strings sorted by name.
func (e Environment) Environ() []string {
	out := make([]string, 0, len(e))
	for _, n := range e.Names() {
		out = append(out, entry(n, e[n]))
	}
	return out
}

// SortNames sorts names in byte order.
func SortNames(names []Name) {
	slices.SortFunc(names, func(a, b Name) int {
		return strings.Compare(a.raw, b.raw)
	})
}
