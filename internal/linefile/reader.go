// Package linefile reads files made of records separated by a single
// delimiter byte. It is the lowest layer of the list file parsers: it knows
// nothing about names, values or tabs, only about records and NUL bytes.
package linefile

import (
	"bufio"
	"bytes"
	"log/slog"

	"github.com/isseis/go-env-sanity/internal/safefileio"
)

// LineFeed is the record delimiter used by all list files.
const LineFeed byte = 0x0A

const (
	nul               byte = 0x00
	initialBufferSize      = 4096
)

// Record is one delimiter-separated chunk of a file.
type Record struct {
	// Index is the zero-based position of the record in the file.
	Index int
	// Bytes excludes the delimiter. It is only valid until the callback
	// returns; callers that keep it must copy it.
	Bytes []byte
}

// ForEachRecord opens path, splits its content on delim and calls fn for
// each record in order. Splitting is exact: an empty record between two
// delimiters is yielded, a non-empty tail without a final delimiter is
// yielded, and nothing is yielded after a final delimiter.
//
// Each record is checked for a NUL byte before fn sees it. Iteration stops
// at the first error, which is either an *OpenError, *ReadError,
// *NULByteError or the error returned by fn. The file is closed before
// ForEachRecord returns.
func ForEachRecord(path string, delim byte, fn func(Record) error) error {
	file, err := safefileio.OpenForRead(path)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Debug("error closing record file", "path", path, "error", closeErr)
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, initialBufferSize), safefileio.MaxFileSize)
	scanner.Split(splitOn(delim))

	index := 0
	for scanner.Scan() {
		raw := scanner.Bytes()
		if offset := bytes.IndexByte(raw, nul); offset >= 0 {
			return &NULByteError{Path: path, Record: index, Offset: offset}
		}
		if err := fn(Record{Index: index, Bytes: raw}); err != nil {
			return err
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		return &ReadError{Path: path, Record: index, Err: err}
	}

	return nil
}

// splitOn returns a bufio.SplitFunc that splits on a single byte. Unlike
// bufio.ScanLines it does not strip carriage returns.
func splitOn(delim byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, delim); i >= 0 {
			return i + 1, data[:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}
