package schedule

import (
	"context"

	"github.com/Cristiand11/portfolio-sub001/internal/audit"
	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type ReplaceWeeklyScheduleInput struct {
	Actor    identity.Actor
	DoctorID uint
	Rules    []domain.WeeklyRule
}

type ReplaceWeeklySchedule struct {
	repo  domain.ScheduleRepository
	audit audit.Recorder
}

func NewReplaceWeeklySchedule(
	repo domain.ScheduleRepository,
	audit audit.Recorder,
) *ReplaceWeeklySchedule {
	return &ReplaceWeeklySchedule{
		repo:  repo,
		audit: audit,
	}
}

// Execute swaps the doctor's whole weekly schedule. The new set is checked
// in full before anything is written, and the swap itself is atomic.
func (uc *ReplaceWeeklySchedule) Execute(
	ctx context.Context,
	in ReplaceWeeklyScheduleInput,
) ([]models.WorkingHoursRule, error) {

	if _, err := domain.Authorize(
		domain.TransitionReplaceSchedule,
		domain.StatusNone,
		&models.Appointment{DoctorID: in.DoctorID},
		in.Actor,
	); err != nil {
		return nil, err
	}

	doctor, err := uc.repo.GetUser(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != string(identity.RoleDoctor) {
		return nil, httperr.ErrNotFound("doctor_not_found")
	}

	rules, err := domain.ValidateWeeklySchedule(in.DoctorID, in.Rules)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceWorkingHours(ctx, in.DoctorID, rules); err != nil {
		return nil, err
	}

	actorID, doctorID := in.Actor.UserID, in.DoctorID
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "working_hours.replaced",
		Entity:   "doctor",
		EntityID: &doctorID,
		Metadata: map[string]int{"rules": len(rules)},
	})

	return rules, nil
}
