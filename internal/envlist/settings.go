package envlist

import (
	"bytes"

	"github.com/isseis/go-env-sanity/internal/envvar"
	"github.com/isseis/go-env-sanity/internal/linefile"
)

const (
	tab    byte = '\t'
	equals byte = '='
)

// SettingsList holds forced name/value pairs. They are applied after
// filtering and therefore bypass the black and white lists.
type SettingsList struct {
	values map[envvar.Name]envvar.Value
}

// NewSettingsList creates a settings list from a copy of defaults.
func NewSettingsList(defaults map[envvar.Name]envvar.Value) *SettingsList {
	s := &SettingsList{values: make(map[envvar.Name]envvar.Value, len(defaults)+8)}
	for n, v := range defaults {
		s.values[n] = v
	}
	return s
}

// AddFromFile reads name<TAB>value records. The first tab separates the
// name from the value; later tabs belong to the value. Empty records are
// skipped. Entries overwrite earlier ones with the same name, defaults
// included.
func (s *SettingsList) AddFromFile(path string) error {
	err := linefile.ForEachRecord(path, linefile.LineFeed, func(r linefile.Record) error {
		if len(r.Bytes) == 0 {
			return nil
		}

		i := bytes.IndexByte(r.Bytes, tab)
		if i < 0 {
			return &MissingTabError{Path: path, Record: r.Index}
		}

		rawName, rawValue := r.Bytes[:i], r.Bytes[i+1:]
		switch {
		case len(rawName) == 0:
			return &InvalidNameError{Path: path, Record: r.Index, Reason: "name is empty"}
		case bytes.IndexByte(rawName, equals) >= 0:
			return &InvalidNameError{Path: path, Record: r.Index, Reason: "name contains '='"}
		}

		name, err := envvar.NewName(rawName)
		if err != nil {
			return err
		}
		value, err := envvar.NewValue(rawValue)
		if err != nil {
			return err
		}

		s.values[name] = value
		return nil
	})
	if err != nil {
		return &ListFileError{Kind: KindSettings, Err: err}
	}
	return nil
}

// Get returns the setting for name.
func (s *SettingsList) Get(name envvar.Name) (envvar.Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Len returns the number of settings.
func (s *SettingsList) Len() int {
	return len(s.values)
}

// ApplyTo inserts or overwrites every setting into base and returns base.
// A nil base is replaced by a new environment.
func (s *SettingsList) ApplyTo(base envvar.Environment) envvar.Environment {
	if base == nil {
		base = make(envvar.Environment, len(s.values))
	}
	for n, v := range s.values {
		base[n] = v
	}
	return base
}
