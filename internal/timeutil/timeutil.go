package timeutil

import (
	"fmt"
	"time"
)

// layouts are the timestamp forms accepted at the API boundary: RFC 3339,
// a few ISO-8601-ish variants without a zone, and a bare date. Go accepts
// fractional seconds after any seconds field, so "2016-07-26T19:53:15.00"
// parses too.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses a timestamp string, trying each accepted layout in
// turn. Strings without an explicit zone are interpreted as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Midpoint returns start + (end-start)/2, the instant halfway through a
// dwell window. start and end may be in either order.
func Midpoint(start, end time.Time) time.Time {
	return start.Add(end.Sub(start) / 2)
}
