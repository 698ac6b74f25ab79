package linefile

import "fmt"

// OpenError is returned when a record file cannot be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("could not open file '%s' for reading: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// ReadError is returned when reading a record fails. Record is the
// zero-based index of the record being read.
type ReadError struct {
	Path   string
	Record int
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("could not read record %d in file '%s' (all offsets are zero-based): %v", e.Record, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NULByteError is returned when a record contains a NUL byte.
type NULByteError struct {
	Path   string
	Record int
	Offset int
}

func (e *NULByteError) Error() string {
	return fmt.Sprintf("file '%s' at record %d contains an ASCII NUL at offset %d (all offsets are zero-based)", e.Path, e.Record, e.Offset)
}
