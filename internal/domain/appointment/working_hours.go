package appointment

import (
	"context"
	"sort"
	"time"

	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

// WeeklyRule is one requested availability window, before validation.
type WeeklyRule struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func ruleInterval(startTime, endTime string) (Interval, error) {
	if startTime == "" || endTime == "" {
		return Interval{}, httperr.ErrValidation("missing_time")
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Interval{}, err
	}
	if start >= end {
		return Interval{}, httperr.ErrValidation("start_not_before_end")
	}
	return Interval{Start: start, End: end}, nil
}

// IsWithinWorkingHours is true iff some rule for the date's weekday fully
// contains [startTime, startTime+duration).
func IsWithinWorkingHours(
	rules []models.WorkingHoursRule,
	date time.Time,
	startTime string,
	durationMinutes int,
) (bool, error) {

	start, err := ParseClock(startTime)
	if err != nil {
		return false, err
	}
	slot := NewInterval(start, durationMinutes)
	weekday := int(date.Weekday())

	for _, r := range rules {
		if r.Weekday != weekday {
			continue
		}
		window, err := ruleInterval(r.StartTime, r.EndTime)
		if err != nil {
			continue
		}
		if window.Contains(slot) {
			return true, nil
		}
	}
	return false, nil
}

// ValidateWeeklySchedule checks every rule and rejects the whole batch if
// any two rules on the same weekday overlap. It returns the rules ready to
// persist for doctorID, ordered by weekday then start time.
func ValidateWeeklySchedule(doctorID uint, rules []WeeklyRule) ([]models.WorkingHoursRule, error) {
	type parsed struct {
		rule     WeeklyRule
		interval Interval
	}

	byWeekday := make(map[int][]parsed)
	for _, r := range rules {
		if r.Weekday < 0 || r.Weekday > 6 {
			return nil, httperr.ErrValidation("invalid_weekday")
		}
		iv, err := ruleInterval(r.StartTime, r.EndTime)
		if err != nil {
			return nil, err
		}
		byWeekday[r.Weekday] = append(byWeekday[r.Weekday], parsed{rule: r, interval: iv})
	}

	for _, group := range byWeekday {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if group[i].interval.Overlaps(group[j].interval) {
					return nil, httperr.ErrConflict("overlapping_working_hours")
				}
			}
		}
	}

	out := make([]models.WorkingHoursRule, 0, len(rules))
	for weekday, group := range byWeekday {
		for _, p := range group {
			out = append(out, models.WorkingHoursRule{
				DoctorID:  doctorID,
				Weekday:   weekday,
				StartTime: p.rule.StartTime,
				EndTime:   p.rule.EndTime,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weekday != out[j].Weekday {
			return out[i].Weekday < out[j].Weekday
		}
		return out[i].StartTime < out[j].StartTime
	})

	return out, nil
}

// RulesReader loads a doctor's rules for one weekday.
type RulesReader interface {
	ListWorkingHours(ctx context.Context, doctorID uint, weekday int) ([]models.WorkingHoursRule, error)
}

type WorkingHoursValidator struct {
	rules RulesReader
}

func NewWorkingHoursValidator(rules RulesReader) *WorkingHoursValidator {
	return &WorkingHoursValidator{rules: rules}
}

func (v *WorkingHoursValidator) IsWithinWorkingHours(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	startTime string,
	durationMinutes int,
) (bool, error) {

	rules, err := v.rules.ListWorkingHours(ctx, doctorID, int(date.Weekday()))
	if err != nil {
		return false, err
	}
	return IsWithinWorkingHours(rules, date, startTime, durationMinutes)
}
