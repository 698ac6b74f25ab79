package launcher

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Execer replaces the current process image.
type Execer interface {
	Exec(path string, argv []string, envv []string) error
}

type unixExecer struct{}

func (unixExecer) Exec(path string, argv []string, envv []string) error {
	return unix.Exec(path, argv, envv)
}

// DefaultExecer uses execve(2). Standard streams are inherited.
var DefaultExecer Execer = unixExecer{}

// Exec replaces the current process with the planned program. The inherited
// environment is discarded entirely. It only returns on failure.
func Exec(plan *Plan, execer Execer) error {
	if execer == nil {
		execer = DefaultExecer
	}
	if err := execer.Exec(plan.Path, plan.Argv(), plan.Env.Environ()); err != nil {
		return fmt.Errorf("could not execute %q: %w", plan.Program, err)
	}
	return nil
}
