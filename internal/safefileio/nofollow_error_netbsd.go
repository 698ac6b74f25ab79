//go:build netbsd

package safefileio

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// isNoFollowError checks if the error indicates we tried to open a symlink.
// NetBSD returns EFTYPE when opening a symlink with O_NOFOLLOW.
func isNoFollowError(err error) bool {
	var e *os.PathError
	if !errors.As(err, &e) {
		return false
	}
	return errors.Is(e.Err, unix.EFTYPE)
}
