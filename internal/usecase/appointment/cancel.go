package appointment

import (
	"context"
	"time"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/notification"
)

type CancelAppointment struct {
	Deps
}

func NewCancelAppointment(d Deps) *CancelAppointment {
	return &CancelAppointment{Deps: d}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	loc := uc.Clock.Location()

	res, err := runTransition(ctx, uc.Deps, appointmentID, actor, domain.TransitionCancel,
		func(ctx context.Context, tx domain.Repository, ap *models.Appointment, c domain.Capability, now time.Time) error {
			profile, err := tx.GetDoctorProfile(ctx, ap.DoctorID)
			if err != nil {
				return err
			}
			return domain.Cancel(ap, c.Party(), profile.CancellationNoticeHours, now, loc)
		})
	if err != nil {
		return nil, err
	}

	return finish(ctx, uc.Deps, actor, res, "appointment.cancelled", notification.EventCancelled)
}
