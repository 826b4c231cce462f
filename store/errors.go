package store

import (
	"errors"
	"fmt"
)

// ErrStaleOccupancy is returned by UpdateRoomOccupancy when the conditional
// write matched no row because another allocation changed the counter
// between the re-read and the update.
var ErrStaleOccupancy = errors.New("room occupancy changed since last read")

// WriteError reports a single failed mutation, with the table it hit.
type WriteError struct {
	Table string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write to %s failed: %v", e.Table, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup or keyed update that matched no row.
type NotFoundError struct {
	Table string
	ID    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record with id %s", e.Table, e.ID)
}
