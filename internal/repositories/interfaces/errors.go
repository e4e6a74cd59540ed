package interfaces

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrStaleRecord is returned when a conditional write found the record
	// changed since it was read.
	ErrStaleRecord = errors.New("record changed since it was read")
)
