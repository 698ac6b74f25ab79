package linefile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStop = errors.New("stop")

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func collect(t *testing.T, path string, delim byte) ([]Record, error) {
	t.Helper()
	var records []Record
	err := ForEachRecord(path, delim, func(r Record) error {
		records = append(records, Record{Index: r.Index, Bytes: append([]byte(nil), r.Bytes...)})
		return nil
	})
	return records, err
}

func TestForEachRecord_Splitting(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty file", content: "", want: nil},
		{name: "single record without delimiter", content: "PATH", want: []string{"PATH"}},
		{name: "trailing delimiter", content: "PATH\nTMPDIR\n", want: []string{"PATH", "TMPDIR"}},
		{name: "no trailing delimiter", content: "PATH\nTMPDIR", want: []string{"PATH", "TMPDIR"}},
		{name: "empty record in the middle", content: "A\n\nB", want: []string{"A", "", "B"}},
		{name: "only a delimiter", content: "\n", want: []string{""}},
		{name: "carriage return is kept", content: "A\r\nB", want: []string{"A\r", "B"}},
		{name: "tabs are not split", content: "TZ\tEurope/London\n", want: []string{"TZ\tEurope/London"}},
		{name: "non-utf8 bytes", content: "\xff\xfe\n", want: []string{"\xff\xfe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := collect(t, writeFile(t, tt.content), LineFeed)
			require.NoError(t, err)

			var got []string
			for i, r := range records {
				assert.Equal(t, i, r.Index)
				got = append(got, string(r.Bytes))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForEachRecord_CustomDelimiter(t *testing.T) {
	records, err := collect(t, writeFile(t, "a,b,,c"), ',')
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "c", string(records[3].Bytes))
}

func TestForEachRecord_NULByte(t *testing.T) {
	path := writeFile(t, "PATH\nTMP\x00DIR\nHOME\n")

	var seen []string
	err := ForEachRecord(path, LineFeed, func(r Record) error {
		seen = append(seen, string(r.Bytes))
		return nil
	})

	var nulErr *NULByteError
	require.ErrorAs(t, err, &nulErr)
	assert.Equal(t, path, nulErr.Path)
	assert.Equal(t, 1, nulErr.Record)
	assert.Equal(t, 3, nulErr.Offset)
	assert.Equal(t, []string{"PATH"}, seen, "records after the NUL are never delivered")
}

func TestForEachRecord_OpenError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")

	err := ForEachRecord(path, LineFeed, func(Record) error { return nil })

	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, path, openErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestForEachRecord_DirectoryIsOpenError(t *testing.T) {
	err := ForEachRecord(t.TempDir(), LineFeed, func(Record) error { return nil })

	var openErr *OpenError
	assert.ErrorAs(t, err, &openErr)
}

func TestForEachRecord_CallbackErrorStopsIteration(t *testing.T) {
	path := writeFile(t, "A\nB\nC\n")

	calls := 0
	err := ForEachRecord(path, LineFeed, func(r Record) error {
		calls++
		if r.Index == 1 {
			return errStop
		}
		return nil
	})

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 2, calls)
}
