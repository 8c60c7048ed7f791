// Package businessday counts elapsed weekdays. Holidays are not excluded.
package businessday

import "time"

func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Elapsed returns how many business days have passed since `since`.
// It walks forward one calendar day at a time from `since` and counts each
// daily anniversary strictly before `now` that lands on a weekday, so a
// request made Monday 10:00 reaches 1 just after Tuesday 10:00 and 5 just
// after the following Monday 10:00.
//
// Weekdays are read in now's location, which callers take from the
// operating clock; `since` is converted to it first.
func Elapsed(since, now time.Time) int {
	since = since.In(now.Location())
	if !now.After(since) {
		return 0
	}

	n := 0
	for d := 1; ; d++ {
		day := since.AddDate(0, 0, d)
		if !day.Before(now) {
			break
		}
		if IsBusinessDay(day) {
			n++
		}
	}
	return n
}

// WithinGrace reports whether no more than `threshold` business days have
// elapsed. Revert is allowed while this holds; once it stops holding the
// request is finalized.
func WithinGrace(since, now time.Time, threshold int) bool {
	return Elapsed(since, now) <= threshold
}

// Exceeded is the complement of WithinGrace.
func Exceeded(since, now time.Time, threshold int) bool {
	return !WithinGrace(since, now, threshold)
}
