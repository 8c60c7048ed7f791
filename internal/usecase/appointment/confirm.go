package appointment

import (
	"context"
	"time"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/notification"
)

type ConfirmAppointment struct {
	Deps
}

func NewConfirmAppointment(d Deps) *ConfirmAppointment {
	return &ConfirmAppointment{Deps: d}
}

// Execute accepts a pending request or reschedule proposal. Adopting a
// proposal re-checks the proposed slot, since other bookings may have
// landed there after the proposal was made.
func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	loc := uc.Clock.Location()

	res, err := runTransition(ctx, uc.Deps, appointmentID, actor, domain.TransitionConfirm,
		func(ctx context.Context, tx domain.Repository, ap *models.Appointment, _ domain.Capability, now time.Time) error {
			adopting := domain.Status(ap.Status).IsReschedulePending()
			if err := domain.Confirm(ap, now, loc); err != nil {
				return err
			}
			if !adopting {
				return nil
			}
			return assertSlotFree(ctx, tx, ap.DoctorID, ap.PatientID, ap.Date, ap.StartTime, ap.DurationMinutes, ap.ID)
		})
	if err != nil {
		return nil, err
	}

	return finish(ctx, uc.Deps, actor, res, "appointment.confirmed", notification.EventConfirmed)
}
