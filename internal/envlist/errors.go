package envlist

import (
	"fmt"

	"github.com/isseis/go-env-sanity/internal/envvar"
)

// DefaultCollisionError is returned when a built-in white list default is
// already black-listed. Unlike a collision coming from a white list file,
// this is fatal: it means the defaults table itself is inconsistent.
type DefaultCollisionError struct {
	Name envvar.Name
}

func (e *DefaultCollisionError) Error() string {
	return fmt.Sprintf("environment variable %s occurs in the black list AND the white list defaults", e.Name.Quoted())
}

// MissingTabError is returned when a settings record has no tab delimiter.
type MissingTabError struct {
	Path   string
	Record int
}

func (e *MissingTabError) Error() string {
	return fmt.Sprintf("there is no tab delimiter in settings file '%s' at record %d (all offsets are zero-based)", e.Path, e.Record)
}

// InvalidNameError is returned when a settings record names a variable that
// cannot be represented in an exec environment.
type InvalidNameError struct {
	Path   string
	Record int
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("settings file '%s' at record %d has an invalid variable name: %s (all offsets are zero-based)", e.Path, e.Record, e.Reason)
}

// ListFileError annotates a record-level failure with the kind of list file
// being read.
type ListFileError struct {
	Kind Kind
	Err  error
}

func (e *ListFileError) Error() string {
	return fmt.Sprintf("%s list: %v", e.Kind, e.Err)
}

func (e *ListFileError) Unwrap() error {
	return e.Err
}
