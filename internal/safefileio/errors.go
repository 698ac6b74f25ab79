// Package safefileio provides scoped file I/O for configuration and log
// files: only regular files are read, reads are size-bounded and log files
// are never created through a symbolic link.
package safefileio

import "errors"

var (
	// ErrInvalidFilePath indicates that the specified file path is invalid.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrNotRegularFile indicates that the path names a directory, device,
	// pipe or other non-regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrIsSymlink indicates that the specified path is a symbolic link, which is not allowed.
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrFileTooLarge indicates that the file is too large.
	ErrFileTooLarge = errors.New("file too large")
)
