package utils

const (
	DefaultLanguage = "en"
	DefaultTimeZone = "UTC"
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidToken     = "invalid token"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
	ErrDriverNotFound   = "driver not found"
	ErrTripNotFound     = "trip request not found"
	ErrInvalidOTP       = "provided otp is invalid"
	ErrNotTripDriver    = "trip request is not assigned to this driver"
	ErrTripStarted      = "trip already started"
	ErrTripCompleted    = "trip already completed"
	ErrTripCancelled    = "trip request was cancelled"
	ErrTripConflict     = "trip request is being updated, please retry"
	ErrUnknown          = "Unknown error occurred. Please try again."
)

// Success Messages
const (
	MsgDriverTripStarted = "driver_trip_started"
	MsgBidSubmitted      = "bid_submitted_successfully"
	MsgBidUpdated        = "bid_updated_and_submitted_successfully"
)

// Error Codes
const (
	CodeTripNotFound      = "TRIP_NOT_FOUND"
	CodeInvalidOTP        = "INVALID_OTP"
	CodeForbidden         = "FORBIDDEN"
	CodeTripStarted       = "TRIP_ALREADY_STARTED"
	CodeTripCompleted     = "TRIP_ALREADY_COMPLETED"
	CodeTripCancelled     = "TRIP_CANCELLED"
	CodeTripStartConflict = "TRIP_START_CONFLICT"
	CodeUnknown           = "UNKNOWN_ERROR"
	CodeDriverNotFound    = "DRIVER_NOT_FOUND"
)
