package appointment

import (
	"time"

	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

// 2026-03-02 is a Monday.
var (
	testLoc = time.UTC
	monday  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, testLoc)
}

func booking(id uint, start string, duration int, status Status) models.Appointment {
	return models.Appointment{
		ID:              id,
		DoctorID:        1,
		PatientID:       2,
		Date:            monday,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          string(status),
	}
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
