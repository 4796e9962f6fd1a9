package leaguestat

import (
	"errors"
	"fmt"
)

// MalformedEntryError reports one schedule row that could not be normalized.
// It never escapes Normalize: the offending entry is logged and skipped so a
// single bad row cannot take down a whole season.
type MalformedEntryError struct {
	Index int
	Err   error
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed schedule entry at index %d: %v", e.Index, e.Err)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}

// AsMalformedEntry attempts to unwrap an error into a MalformedEntryError.
func AsMalformedEntry(err error) (*MalformedEntryError, bool) {
	var meErr *MalformedEntryError
	if errors.As(err, &meErr) {
		return meErr, true
	}
	return nil, false
}
