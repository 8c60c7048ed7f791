package appointment

import (
	"context"
	"time"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/notification"
)

type CompleteAppointment struct {
	Deps
}

func NewCompleteAppointment(d Deps) *CompleteAppointment {
	return &CompleteAppointment{Deps: d}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	res, err := runTransition(ctx, uc.Deps, appointmentID, actor, domain.TransitionComplete,
		func(_ context.Context, _ domain.Repository, ap *models.Appointment, _ domain.Capability, now time.Time) error {
			return domain.Complete(ap, now)
		})
	if err != nil {
		return nil, err
	}

	return finish(ctx, uc.Deps, actor, res, "appointment.completed", notification.EventCompleted)
}
