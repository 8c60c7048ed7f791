package appointment

import (
	"fmt"
	"time"

	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
)

const clockLayout = "15:04"

// Interval is a half-open range of minutes since midnight: [Start, End).
type Interval struct {
	Start int
	End   int
}

func NewInterval(start, durationMinutes int) Interval {
	return Interval{Start: start, End: start + durationMinutes}
}

// Overlaps is true when the candidate starts inside b, ends inside b, or
// envelops b. Touching intervals do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether b lies entirely within a.
func (a Interval) Contains(b Interval) bool {
	return b.Start >= a.Start && b.End <= a.End
}

func (a Interval) Extend(minutes int) Interval {
	return Interval{Start: a.Start, End: a.End + minutes}
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != len(clockLayout) {
		return 0, httperr.ErrValidation("invalid_time_format")
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, httperr.ErrValidation("invalid_time_format")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// StartAt combines a calendar date and an "HH:MM" clock into an instant in loc.
func StartAt(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc), nil
}

// ParseDate parses "YYYY-MM-DD" as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date_format")
	}
	return d, nil
}

func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
