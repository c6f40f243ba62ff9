// Package isodate recognizes the ISO-8601 date and date-time strings accepted by
// the "date" schema type and the minDate/maxDate bounds.
package isodate

import (
	"regexp"
	"time"
)

// shape is the accepted lexical form: a calendar date, optionally followed by a
// time of day with optional millisecond fraction, optionally followed by a zone
// designator.
var shape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d{3})?(Z|[+-]\d{2}:\d{2})?)?$`)

// layouts are tried in order; time.Parse rejects impossible calendar dates such
// as 2020-02-30 or month 13, which the regular expression alone lets through.
var layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.000Z07:00",
}

// Parse returns the instant denoted by s. Strings without a zone designator are
// interpreted as UTC.
func Parse(s string) (time.Time, bool) {
	if !shape.MatchString(s) {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Valid reports whether s is an ISO date that denotes a real calendar instant.
func Valid(s string) bool {
	_, ok := Parse(s)
	return ok
}

// Compare returns -1, 0 or +1 depending on whether a is before, equal to or after
// b. Both must be valid; ok is false otherwise.
func Compare(a, b string) (cmp int, ok bool) {
	ta, okA := Parse(a)
	tb, okB := Parse(b)
	if !okA || !okB {
		return 0, false
	}
	return ta.Compare(tb), true
}
