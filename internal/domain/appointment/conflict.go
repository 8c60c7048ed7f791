package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

// BufferMinutes separates consecutive bookings on the same resource.
const BufferMinutes = 5

type ResourceKind string

const (
	ResourceDoctor  ResourceKind = "doctor"
	ResourcePatient ResourceKind = "patient"
)

// ResourceKey identifies one scheduling resource: a doctor's or a patient's
// calendar on a given date.
type ResourceKey struct {
	Kind ResourceKind
	ID   uint
	Date time.Time
}

func DoctorResource(id uint, date time.Time) ResourceKey {
	return ResourceKey{Kind: ResourceDoctor, ID: id, Date: date}
}

func PatientResource(id uint, date time.Time) ResourceKey {
	return ResourceKey{Kind: ResourcePatient, ID: id, Date: date}
}

// String is also the advisory-lock key.
func (k ResourceKey) String() string {
	return fmt.Sprintf("%s:%d:%s", k.Kind, k.ID, k.Date.Format("2006-01-02"))
}

// EffectiveInterval is the booking's own range extended by the buffer.
func EffectiveInterval(startTime string, durationMinutes int) (Interval, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(start, durationMinutes).Extend(BufferMinutes), nil
}

// Conflicts reports whether the candidate's effective interval intersects
// the effective interval of any existing booking on the same date whose
// status is busy. excludeID skips the record being edited.
func Conflicts(
	existing []models.Appointment,
	date time.Time,
	startTime string,
	durationMinutes int,
	busy []Status,
	excludeID uint,
) (bool, error) {

	candidate, err := EffectiveInterval(startTime, durationMinutes)
	if err != nil {
		return false, err
	}

	for _, ap := range existing {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !SameDate(ap.Date, date) || !statusIn(Status(ap.Status), busy) {
			continue
		}

		other, err := EffectiveInterval(ap.StartTime, ap.DurationMinutes)
		if err != nil {
			return false, err
		}
		if candidate.Overlaps(other) {
			return true, nil
		}
	}

	return false, nil
}

func statusIn(s Status, set []Status) bool {
	for _, b := range set {
		if s == b {
			return true
		}
	}
	return false
}

// BookingReader loads the bookings of one resource on one date.
type BookingReader interface {
	ListResourceBookings(ctx context.Context, key ResourceKey, statuses []Status) ([]models.Appointment, error)
}

type SlotConflictDetector struct {
	bookings BookingReader
}

func NewSlotConflictDetector(bookings BookingReader) *SlotConflictDetector {
	return &SlotConflictDetector{bookings: bookings}
}

func (d *SlotConflictDetector) HasConflict(
	ctx context.Context,
	resource ResourceKey,
	startTime string,
	durationMinutes int,
	busy []Status,
	excludeID uint,
) (bool, error) {

	existing, err := d.bookings.ListResourceBookings(ctx, resource, busy)
	if err != nil {
		return false, err
	}
	return Conflicts(existing, resource.Date, startTime, durationMinutes, busy, excludeID)
}
