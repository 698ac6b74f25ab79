// Package envvar provides byte-safe environment variable names and values.
//
// On Unix an environment entry is an arbitrary byte sequence without NUL.
// Go strings are immutable byte containers, so Name and Value wrap a string
// without imposing any encoding on it: no UTF-8 validation, no case folding
// and no normalization. Equality is byte-exact.
package envvar

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// ErrEmbeddedNUL is returned when a name or value contains a NUL byte.
var ErrEmbeddedNUL = errors.New("embedded NUL byte")

const nul = 0x00

// Name is an environment variable name. The zero value is the empty name.
type Name struct {
	raw string
}

// NewName creates a Name from raw bytes. The bytes are copied.
func NewName(b []byte) (Name, error) {
	if i := bytes.IndexByte(b, nul); i >= 0 {
		return Name{}, fmt.Errorf("%w in name at offset %d", ErrEmbeddedNUL, i)
	}
	return Name{raw: string(b)}, nil
}

// MustName creates a Name from a literal and panics if it contains NUL.
// It is meant for built-in tables only.
func MustName(s string) Name {
	n, err := NewName([]byte(s))
	if err != nil {
		panic(err)
	}
	return n
}

// Bytes returns a copy of the raw bytes of the name.
func (n Name) Bytes() []byte {
	return []byte(n.raw)
}

// String returns the raw bytes as a Go string.
func (n Name) String() string {
	return n.raw
}

// Quoted returns a printable form of the name for diagnostics.
func (n Name) Quoted() string {
	return fmt.Sprintf("%q", n.raw)
}

// Value is an environment variable value.
type Value struct {
	raw string
}

// NewValue creates a Value from raw bytes. The bytes are copied.
func NewValue(b []byte) (Value, error) {
	if i := bytes.IndexByte(b, nul); i >= 0 {
		return Value{}, fmt.Errorf("%w in value at offset %d", ErrEmbeddedNUL, i)
	}
	return Value{raw: string(b)}, nil
}

// MustValue creates a Value from a string and panics if it contains NUL.
func MustValue(s string) Value {
	v, err := NewValue([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}

// Bytes returns a copy of the raw bytes of the value.
func (v Value) Bytes() []byte {
	return []byte(v.raw)
}

// String returns the raw bytes as a Go string.
func (v Value) String() string {
	return v.raw
}

// entry renders name and value in the KEY=VALUE form expected by execve.
func entry(n Name, v Value) string {
	var sb strings.Builder
	sb.Grow(len(n.raw) + 1 + len(v.raw))
	sb.WriteString(n.raw)
	sb.WriteByte('=')
	sb.WriteString(v.raw)
	return sb.String()
}
