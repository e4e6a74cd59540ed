package utils

import (
	"testing"
	"time"
)

func TestFormatDisplayTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

	if got := FormatDisplayTime(ts, time.UTC); got != "09 Mar 2024 02:05 PM" {
		t.Errorf("UTC = %q", got)
	}
	if got := FormatDisplayTime(ts, nil); got != "09 Mar 2024 02:05 PM" {
		t.Errorf("nil location = %q", got)
	}
	if got := FormatDisplayTime(time.Time{}, time.UTC); got != "" {
		t.Errorf("zero time = %q, want empty", got)
	}
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	if loc := LoadLocation("Not/AZone"); loc != time.UTC {
		t.Errorf("unknown zone = %v, want UTC", loc)
	}
	if loc := LoadLocation(""); loc.String() != "UTC" {
		t.Errorf("empty zone = %v, want UTC", loc)
	}
}
