package appointment

import (
	"context"
	"time"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/dto"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/timezone"
)

// ListScope selects whose calendar is listed. Patients always see their
// own, doctors and auxiliaries the doctor's; administrators must pick one.
type ListScope struct {
	Actor     identity.Actor
	DoctorID  uint
	PatientID uint
}

func (s ListScope) filter(from, to time.Time) (domain.PeriodFilter, error) {
	f := domain.PeriodFilter{From: from, To: to}

	switch s.Actor.Role {
	case identity.RolePatient:
		f.PatientID = s.Actor.UserID
	case identity.RoleDoctor:
		f.DoctorID = s.Actor.UserID
	case identity.RoleAuxiliary:
		f.DoctorID = s.Actor.AuxiliaryOf
	case identity.RoleAdministrator:
		f.DoctorID, f.PatientID = s.DoctorID, s.PatientID
	default:
		return f, httperr.ErrForbidden("forbidden")
	}

	if f.DoctorID == 0 && f.PatientID == 0 {
		return f, httperr.ErrValidation("missing_filter")
	}
	return f, nil
}

// ---- by date ----

type ListAppointmentsByDate struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	clock timezone.Clock,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	scope ListScope,
	date string,
) ([]dto.AppointmentView, error) {

	day, err := domain.ParseDate(date, uc.clock.Location())
	if err != nil {
		return nil, err
	}

	f, err := scope.filter(day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewAppointmentViews(appointments), nil
}

// ---- by month ----

type ListAppointmentsByMonth struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	clock timezone.Clock,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	scope ListScope,
	year int,
	month int,
) ([]dto.AppointmentView, error) {

	if month < 1 || month > 12 || year < 1 {
		return nil, httperr.ErrValidation("invalid_month")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.clock.Location())
	f, err := scope.filter(start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewAppointmentViews(appointments), nil
}
