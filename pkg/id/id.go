// Package id generates identifiers for persisted journal entries.
package id

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// New returns a ULID string.
//
// IDs sort by creation time, so trades written by one import keep their
// spreadsheet order in the primary key index. ulid.Make is monotonic within
// the same millisecond and safe for concurrent use.
func New() string {
	return ulid.Make().String()
}

// Time returns the creation time embedded in an ID produced by New.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
