package logging

import "github.com/oklog/ulid/v2"

// GenerateRunID returns a new ULID. Run IDs sort by creation time, so log
// files in one directory list in run order.
func GenerateRunID() string {
	return ulid.Make().String()
}
