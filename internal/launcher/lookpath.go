package launcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// ErrNotFound is returned when the program is not in any search directory.
var ErrNotFound = errors.New("executable file not found in PATH")

// LookPath searches the colon-separated directories of pathList for an
// executable regular file called program. os/exec.LookPath cannot be used
// because it reads PATH from the wrapper's own environment, not from the
// environment the program will run under. An empty element means the
// current directory, as in execvp.
func LookPath(program, pathList string) (string, error) {
	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, program)
		if isExecutable(candidate) {
			if !filepath.IsAbs(candidate) {
				abs, err := filepath.Abs(candidate)
				if err != nil {
					return "", fmt.Errorf("failed to resolve %s: %w", candidate, err)
				}
				candidate = abs
			}
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q (searched %q)", ErrNotFound, program, strings.TrimSpace(pathList))
}

// isExecutable reports whether path is a regular file this process may
// execute. access(2) applies the real owner, group and other bits, as
// execvp does.
func isExecutable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}
