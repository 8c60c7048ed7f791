package appointment

import (
	"context"
	"time"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/notification"
)

type RejectReschedule struct {
	Deps
}

func NewRejectReschedule(d Deps) *RejectReschedule {
	return &RejectReschedule{Deps: d}
}

func (uc *RejectReschedule) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	loc := uc.Clock.Location()

	res, err := runTransition(ctx, uc.Deps, appointmentID, actor, domain.TransitionReject,
		func(_ context.Context, _ domain.Repository, ap *models.Appointment, _ domain.Capability, now time.Time) error {
			return domain.Reject(ap, now, loc)
		})
	if err != nil {
		return nil, err
	}

	return finish(ctx, uc.Deps, actor, res, "appointment.reschedule_rejected", notification.EventRejected)
}
