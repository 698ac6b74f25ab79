// Package envlist implements the black list, white list and settings list
// that decide which variables reach a launched program.
//
// Precedence is fixed: a name in the black list never passes through from
// the inherited environment, a name must be in the white list to pass
// through, and settings are applied last so they bypass both lists.
package envlist

import (
	"github.com/isseis/go-env-sanity/internal/envvar"
	"github.com/isseis/go-env-sanity/internal/linefile"
)

// Kind identifies one of the per-program list files.
type Kind string

const (
	// KindBlack is the black list file kind.
	KindBlack Kind = "black"
	// KindWhite is the white list file kind.
	KindWhite Kind = "white"
	// KindSettings is the settings file kind.
	KindSettings Kind = "settings"
)

// nameSet is the shared set representation of the black and white lists.
type nameSet map[envvar.Name]struct{}

func newNameSet(capacity int) nameSet {
	return make(nameSet, capacity)
}

func (s nameSet) add(n envvar.Name) {
	s[n] = struct{}{}
}

func (s nameSet) contains(n envvar.Name) bool {
	_, ok := s[n]
	return ok
}

func (s nameSet) sorted() []envvar.Name {
	names := make([]envvar.Name, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	envvar.SortNames(names)
	return names
}

// forEachName reads a name-per-record file. Empty records are skipped since
// they cannot name a variable.
func forEachName(kind Kind, path string, fn func(name envvar.Name, record int)) error {
	err := linefile.ForEachRecord(path, linefile.LineFeed, func(r linefile.Record) error {
		if len(r.Bytes) == 0 {
			return nil
		}
		// linefile has already rejected NUL, so NewName cannot fail here.
		name, err := envvar.NewName(r.Bytes)
		if err != nil {
			return err
		}
		fn(name, r.Index)
		return nil
	})
	if err != nil {
		return &ListFileError{Kind: kind, Err: err}
	}
	return nil
}
