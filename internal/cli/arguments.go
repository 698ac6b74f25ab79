// Package cli extracts the program to invoke and its arguments from the
// wrapper's command line.
//
// The wrapper is designed to work as a sha-bang interpreter:
//
//	#!/usr/bin/environment-sanity program-to-invoke
//
// so it takes no flags of its own. Everything after the program name is
// passed through verbatim, including arguments that look like flags.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

// Error definitions
var (
	ErrNoProgram    = errors.New("please provide at least one argument, which is the program to invoke")
	ErrEmptyProgram = errors.New("first argument can not be empty")
)

// PathProgramError is returned when the program argument contains a path
// separator.
type PathProgramError struct {
	Program string
}

func (e *PathProgramError) Error() string {
	return fmt.Sprintf("first argument is the program name to invoke. It must be a file, not a path like %q", e.Program)
}

// Invocation is the parsed command line.
type Invocation struct {
	// Program is a bare executable name.
	Program string
	// Args are passed to Program after its own name.
	Args []string
}

// ParseArguments parses os.Args[1:].
func ParseArguments(args []string) (Invocation, error) {
	if len(args) == 0 {
		return Invocation{}, ErrNoProgram
	}

	program := args[0]
	if program == "" {
		return Invocation{}, ErrEmptyProgram
	}
	if strings.IndexByte(program, '/') >= 0 {
		return Invocation{}, &PathProgramError{Program: program}
	}

	rest := make([]string, len(args)-1)
	copy(rest, args[1:])

	return Invocation{Program: program, Args: rest}, nil
}
