// Package backdate computes historical commit timestamps.
//
// A scheme names the unit successive commits step backwards by. Scheme
// results are pinned to local noon so backfilled days get a plausible
// midday commit regardless of when the tool actually ran.
package backdate

import (
	"time"

	"github.com/fenwood/moss/internal/output"
)

// Scheme is the unit commits step backwards by.
type Scheme string

const (
	SchemeNone   Scheme = ""
	SchemeHourly Scheme = "hourly"
	SchemeDaily  Scheme = "daily"
	SchemeWeekly Scheme = "weekly"
)

// ParseScheme validates a --backdate flag value. An empty value means
// no backdating.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeNone, SchemeHourly, SchemeDaily, SchemeWeekly:
		return Scheme(s), nil
	}
	return SchemeNone, output.NewUserError("invalid backdate scheme \"" + s + "\": valid values are hourly, daily, weekly")
}

// Noon returns when's date at 12:00:00 in when's location.
func Noon(when time.Time) time.Time {
	return time.Date(when.Year(), when.Month(), when.Day(), 12, 0, 0, 0, when.Location())
}

// Compute returns the timestamp for the index-th commit counting back
// from now. With a scheme the result lies index units in the past,
// normalized to local noon; SchemeNone returns now untouched, and
// callers wanting a normalized base apply Noon themselves.
func Compute(now time.Time, scheme Scheme, index int) time.Time {
	switch scheme {
	case SchemeHourly:
		return Noon(now.Add(-time.Duration(index) * time.Hour))
	case SchemeDaily:
		return Noon(now.AddDate(0, 0, -index))
	case SchemeWeekly:
		return Noon(now.AddDate(0, 0, -7*index))
	}
	return now
}
