package appointment

import (
	"context"
	"time"

	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type PeriodFilter struct {
	DoctorID  uint
	PatientID uint
	From      time.Time
	To        time.Time
}

type Repository interface {
	BookingReader
	RulesReader

	// -------- Transactions --------

	// WithinLockedTx runs fn in one transaction after taking an advisory
	// lock on every key. fn receives a repository bound to the transaction.
	WithinLockedTx(
		ctx context.Context,
		keys []string,
		fn func(ctx context.Context, repo Repository) error,
	) error

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		filter PeriodFilter,
	) ([]models.Appointment, error)

	// -------- People --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetDoctorProfile(
		ctx context.Context,
		doctorID uint,
	) (*models.DoctorProfile, error)

	GetAuxiliaryDoctorID(
		ctx context.Context,
		auxiliaryID uint,
	) (uint, error)
}

type ScheduleRepository interface {
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// ReplaceWorkingHours swaps the doctor's whole rule set atomically.
	ReplaceWorkingHours(
		ctx context.Context,
		doctorID uint,
		rules []models.WorkingHoursRule,
	) error

	ListAllWorkingHours(
		ctx context.Context,
		doctorID uint,
	) ([]models.WorkingHoursRule, error)
}
