package appointment

import (
	"context"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/notification"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor identity.Actor

	DoctorID  uint
	PatientID uint

	Date      string
	StartTime string
	// DurationMinutes falls back to the doctor's default when zero.
	DurationMinutes int
	Notes           string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	Deps
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	return &CreateAppointment{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	loc := uc.Clock.Location()
	now := uc.Clock.Now()

	// --------------------------------------------------
	// Input shape
	// --------------------------------------------------
	if in.DoctorID == 0 || in.PatientID == 0 {
		return nil, httperr.ErrValidation("missing_participant")
	}
	if in.DurationMinutes < 0 {
		return nil, httperr.ErrValidation("invalid_duration")
	}
	date, err := domain.ParseDate(in.Date, loc)
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParseClock(in.StartTime); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		DoctorID:        in.DoctorID,
		PatientID:       in.PatientID,
		Date:            date,
		StartTime:       in.StartTime,
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
	}

	// --------------------------------------------------
	// Authorization
	// --------------------------------------------------
	c, err := domain.Authorize(domain.TransitionCreate, domain.StatusNone, ap, in.Actor)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Participants
	// --------------------------------------------------
	doctor, err := uc.Repo.GetUser(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != string(identity.RoleDoctor) {
		return nil, httperr.ErrNotFound("doctor_not_found")
	}
	if !doctor.Active {
		return nil, httperr.ErrConflict("doctor_inactive")
	}

	patient, err := uc.Repo.GetUser(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if patient.Role != string(identity.RolePatient) {
		return nil, httperr.ErrNotFound("patient_not_found")
	}

	profile, err := uc.Repo.GetDoctorProfile(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if ap.DurationMinutes == 0 {
		ap.DurationMinutes = profile.DefaultDurationMinutes
	}

	// --------------------------------------------------
	// Slot shape
	// --------------------------------------------------
	if err := domain.ValidateSlot(ap.StartTime, ap.DurationMinutes); err != nil {
		return nil, err
	}
	start, err := domain.ScheduledStart(ap, loc)
	if err != nil {
		return nil, err
	}
	if !start.After(now) {
		return nil, httperr.ErrValidation("slot_in_past")
	}

	ap.Status = string(domain.InitialStatus(c.Party()))

	// --------------------------------------------------
	// Check and write under the resource locks
	// --------------------------------------------------
	keys := lockKeys(ap.DoctorID, ap.PatientID, ap.Date)
	err = uc.Repo.WithinLockedTx(ctx, keys, func(ctx context.Context, tx domain.Repository) error {
		if err := assertSlotFree(ctx, tx, ap.DoctorID, ap.PatientID, ap.Date, ap.StartTime, ap.DurationMinutes, 0); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrConflict("time_conflict")
		}
		return nil, err
	}

	// --------------------------------------------------
	// Side effects
	// --------------------------------------------------
	record(uc.Deps, in.Actor, "appointment.created", ap, map[string]any{
		"status":   ap.Status,
		"date":     in.Date,
		"start":    ap.StartTime,
		"duration": ap.DurationMinutes,
	})
	announce(ctx, uc.Deps, notification.EventCreated, ap, counterpart(c.Party()))

	return ap, nil
}
