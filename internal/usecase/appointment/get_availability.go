package appointment

import (
	"context"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewGetAvailability(repo domain.Repository, clock timezone.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clock}
}

// Execute lists the free start times of a doctor on one date. A zero
// duration uses the doctor's default.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	doctorID uint,
	date string,
	durationMinutes int,
) ([]domain.TimeSlot, error) {

	day, err := domain.ParseDate(date, uc.clock.Location())
	if err != nil {
		return nil, err
	}
	if durationMinutes < 0 {
		return nil, httperr.ErrValidation("invalid_duration")
	}

	doctor, err := uc.repo.GetUser(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != string(identity.RoleDoctor) {
		return nil, httperr.ErrNotFound("doctor_not_found")
	}
	if !doctor.Active {
		return []domain.TimeSlot{}, nil
	}

	in := domain.AvailabilityInput{DoctorID: doctorID, Date: day, DurationMinutes: durationMinutes}
	if in.DurationMinutes == 0 {
		profile, err := uc.repo.GetDoctorProfile(ctx, doctorID)
		if err != nil {
			return nil, err
		}
		in.DurationMinutes = profile.DefaultDurationMinutes
	}

	rules, err := uc.repo.ListWorkingHours(ctx, in.DoctorID, int(in.Date.Weekday()))
	if err != nil {
		return nil, err
	}

	bookings, err := uc.repo.ListResourceBookings(ctx, domain.DoctorResource(in.DoctorID, in.Date), domain.BusyStatuses)
	if err != nil {
		return nil, err
	}

	return domain.FreeSlots(rules, bookings, in.Date, in.DurationMinutes, uc.clock.Now()), nil
}
