package utils

import (
	"time"
)

// DisplayTimeLayout is the human readable layout used in API responses.
const DisplayTimeLayout = "02 Jan 2006 03:04 PM"

// LoadLocation resolves timezone, falling back to UTC for an empty or unknown
// name.
func LoadLocation(timezone string) *time.Location {
	if timezone == "" {
		timezone = DefaultTimeZone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func FormatDisplayTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayTimeLayout)
}
