package safefileio

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// MaxFileSize is the maximum size accepted for configuration files (16 MB)
const MaxFileSize = 16 * 1024 * 1024

const dirPerm os.FileMode = 0o750

// IsRegularFile reports whether path exists and, after following symlinks,
// names a regular file. Every other outcome, including a permission error,
// is reported as false.
func IsRegularFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// OpenForRead opens a file for reading and verifies through the open
// descriptor that it is a regular file no larger than MaxFileSize. Checking
// the descriptor rather than the path keeps the check valid even if the
// path is replaced after opening. The caller owns the returned file.
func OpenForRead(filePath string) (*os.File, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - the path comes from a fixed per-user location
	file, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}

	if err := validateFile(file, absPath); err != nil {
		closeQuietly(file)
		return nil, err
	}

	return file, nil
}

// ReadFile reads a whole file through OpenForRead.
func ReadFile(filePath string) ([]byte, error) {
	file, err := OpenForRead(filePath)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(file)

	content, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if int64(len(content)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return content, nil
}

// OpenForWrite creates or truncates a file for writing. The parent directory
// is created if needed. The final path component must not be a symbolic link.
func OpenForWrite(filePath string, perm os.FileMode) (*os.File, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// #nosec G304 - O_NOFOLLOW prevents writing through a planted symlink
	file, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|unix.O_NOFOLLOW, perm)
	if err != nil {
		if isNoFollowError(err) {
			return nil, ErrIsSymlink
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	fi, err := file.Stat()
	if err != nil {
		closeQuietly(file)
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if !fi.Mode().IsRegular() {
		closeQuietly(file)
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, absPath)
	}

	return file, nil
}

// validateFile checks via the descriptor that the file is regular and
// within the size limit.
func validateFile(file *os.File, filePath string) error {
	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, filePath)
	}

	if fileInfo.Size() > MaxFileSize {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, filePath)
	}

	return nil
}

func closeQuietly(file *os.File) {
	if err := file.Close(); err != nil {
		slog.Debug("error closing file", "path", file.Name(), "error", err)
	}
}
