package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30)
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// DateLayout is the calendar date format used on invoices and filters.
const DateLayout = "2006-01-02"

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// Today returns the current calendar date formatted as YYYY-MM-DD.
func Today() string {
	return Now().Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date in IST.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}

// DateOrToday parses value as a calendar date, falling back to today's date
// when value is empty or malformed.
func DateOrToday(value string) time.Time {
	if value == "" {
		return Now()
	}
	t, err := ParseDate(value)
	if err != nil {
		return Now()
	}
	return t
}

// SameOrAfter reports whether date a falls on or after date b, comparing
// calendar dates only.
func SameOrAfter(a, b time.Time) bool {
	return !truncate(a).Before(truncate(b))
}

// SameOrBefore reports whether date a falls on or before date b, comparing
// calendar dates only.
func SameOrBefore(a, b time.Time) bool {
	return !truncate(a).After(truncate(b))
}

func truncate(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}
