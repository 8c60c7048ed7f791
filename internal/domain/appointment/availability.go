package appointment

import (
	"sort"
	"time"

	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type AvailabilityInput struct {
	DoctorID        uint
	Date            time.Time
	DurationMinutes int
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlots walks each working-hours window of the date's weekday in steps
// of durationMinutes and keeps the slots that fit the window, start after
// now and do not conflict with a busy booking.
func FreeSlots(
	rules []models.WorkingHoursRule,
	bookings []models.Appointment,
	date time.Time,
	durationMinutes int,
	now time.Time,
) []TimeSlot {

	if durationMinutes <= 0 {
		return nil
	}

	weekday := int(date.Weekday())
	var windows []Interval
	for _, r := range rules {
		if r.Weekday != weekday {
			continue
		}
		iv, err := ruleInterval(r.StartTime, r.EndTime)
		if err != nil {
			continue
		}
		windows = append(windows, iv)
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })

	slots := []TimeSlot{}
	for _, w := range windows {
		for cur := w.Start; cur+durationMinutes <= w.End; cur += durationMinutes {
			clock := FormatClock(cur)

			startAt := time.Date(date.Year(), date.Month(), date.Day(), cur/60, cur%60, 0, 0, now.Location())
			if !startAt.After(now) {
				continue
			}

			conflict, err := Conflicts(bookings, date, clock, durationMinutes, BusyStatuses, 0)
			if err != nil || conflict {
				continue
			}

			slots = append(slots, TimeSlot{
				Start: clock,
				End:   FormatClock(cur + durationMinutes),
			})
		}
	}
	return slots
}
