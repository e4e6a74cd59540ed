package services

import "errors"

// Trip start failures. Each is surfaced to the caller distinctly.
var (
	ErrTripNotFound         = errors.New("trip request not found")
	ErrInvalidOTP           = errors.New("provided otp is invalid")
	ErrNotAssignedDriver    = errors.New("driver is not assigned to this trip request")
	ErrTripAlreadyStarted   = errors.New("trip started already")
	ErrTripAlreadyCompleted = errors.New("request completed already")
	ErrTripCancelled        = errors.New("request cancelled")
	ErrStartConflict        = errors.New("trip request changed concurrently, please retry")
)

// ErrBidUnknown is the only error the bid path returns. Lower level causes
// are logged, never exposed.
var ErrBidUnknown = errors.New("unknown error occurred")
