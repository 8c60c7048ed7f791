package appointment

import (
	"context"
	"time"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/notification"
)

type RequestRescheduleInput struct {
	Actor         identity.Actor
	AppointmentID uint
	NewDate       string
	NewTime       string
}

type RequestReschedule struct {
	Deps
}

func NewRequestReschedule(d Deps) *RequestReschedule {
	return &RequestReschedule{Deps: d}
}

func (uc *RequestReschedule) Execute(
	ctx context.Context,
	in RequestRescheduleInput,
) (*models.Appointment, error) {

	loc := uc.Clock.Location()

	newDate, err := domain.ParseDate(in.NewDate, loc)
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParseClock(in.NewTime); err != nil {
		return nil, err
	}

	now := uc.Clock.Now()
	var (
		ap   *models.Appointment
		c    domain.Capability
		from domain.Status
	)

	err = withAppointmentLocks(ctx, uc.Deps, in.AppointmentID, []time.Time{newDate}, func(ctx context.Context, tx domain.Repository, locked *models.Appointment) error {
		from = domain.Status(locked.Status)
		var err error
		c, err = domain.Authorize(domain.TransitionRequestReschedule, from, locked, in.Actor)
		if err != nil {
			return err
		}

		if err := domain.ValidateSlot(in.NewTime, locked.DurationMinutes); err != nil {
			return err
		}
		if err := domain.RequestReschedule(locked, c.Party(), newDate, in.NewTime, now, loc); err != nil {
			return err
		}
		if err := assertSlotFree(ctx, tx, locked.DoctorID, locked.PatientID, newDate, in.NewTime, locked.DurationMinutes, locked.ID); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, locked); err != nil {
			return err
		}
		ap = locked
		return nil
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrConflict("time_conflict")
		}
		return nil, err
	}

	record(uc.Deps, in.Actor, "appointment.reschedule_requested", ap, map[string]string{
		"from":          string(from),
		"to":            ap.Status,
		"proposed_date": in.NewDate,
		"proposed_time": in.NewTime,
	})
	announce(ctx, uc.Deps, notification.EventRescheduleRequested, ap, counterpart(c.Party()))

	return ap, nil
}

