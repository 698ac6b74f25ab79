package envlist

import "github.com/isseis/go-env-sanity/internal/envvar"

// BlackList is the set of names that must never pass through from the
// inherited environment. Names are only ever added.
type BlackList struct {
	names nameSet
}

// NewBlackList creates a black list seeded with defaults. Duplicates
// collapse silently.
func NewBlackList(defaults []envvar.Name) *BlackList {
	b := &BlackList{names: newNameSet(len(defaults) + 8)}
	for _, n := range defaults {
		b.names.add(n)
	}
	return b
}

// AddFromFile adds every non-empty record of a linefeed-separated file as a
// name.
func (b *BlackList) AddFromFile(path string) error {
	return forEachName(KindBlack, path, func(name envvar.Name, _ int) {
		b.names.add(name)
	})
}

// Contains reports whether name is black-listed.
func (b *BlackList) Contains(name envvar.Name) bool {
	return b.names.contains(name)
}

// Len returns the number of black-listed names.
func (b *BlackList) Len() int {
	return len(b.names)
}

// Names returns the black-listed names in byte order.
func (b *BlackList) Names() []envvar.Name {
	return b.names.sorted()
}
