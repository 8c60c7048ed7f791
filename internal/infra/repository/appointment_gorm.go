package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/timezone"
)

const dateLayout = "2006-01-02"

type AppointmentGormRepository struct {
	db   *gorm.DB
	loc  *time.Location
	inTx bool
}

func NewAppointmentGormRepository(db *gorm.DB, loc *time.Location) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, loc: loc}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

// sortedKeys dedupes and orders lock keys so every caller acquires them in
// the same order.
func sortedKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func lockKeys(tx *gorm.DB, keys []string) error {
	for _, k := range sortedKeys(keys) {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", k).Error; err != nil {
			return fmt.Errorf("advisory lock %s: %w", k, err)
		}
	}
	return nil
}

func (r *AppointmentGormRepository) WithinLockedTx(
	ctx context.Context,
	keys []string,
	fn func(ctx context.Context, repo domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockKeys(tx, keys); err != nil {
			return err
		}
		return fn(ctx, &AppointmentGormRepository{db: tx, loc: r.loc, inTx: true})
	})
}

// forUpdate adds a row lock when running inside a transaction.
func (r *AppointmentGormRepository) forUpdate(q *gorm.DB) *gorm.DB {
	if r.inTx {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// normalize re-anchors DATE columns in the operating timezone and rejects
// rows whose status is not one this build knows.
func (r *AppointmentGormRepository) normalize(ap *models.Appointment) error {
	if _, err := domain.ParseStatus(ap.Status); err != nil {
		return fmt.Errorf("appointment %d has unknown status %q", ap.ID, ap.Status)
	}
	ap.Date = timezone.SameDateIn(ap.Date, r.loc)
	if ap.ProposedDate != nil {
		d := timezone.SameDateIn(*ap.ProposedDate, r.loc)
		ap.ProposedDate = &d
	}
	return nil
}

func (r *AppointmentGormRepository) normalizeAll(aps []models.Appointment) error {
	for i := range aps {
		if err := r.normalize(&aps[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.forUpdate(r.db.WithContext(ctx)).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found")
		}
		return nil, err
	}
	if err := r.normalize(&ap); err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	f domain.PeriodFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Where("date >= ? AND date < ?", f.From.Format(dateLayout), f.To.Format(dateLayout))

	if f.DoctorID != 0 {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.PatientID != 0 {
		q = q.Where("patient_id = ?", f.PatientID)
	}

	var apps []models.Appointment
	if err := q.Order("date ASC").Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	if err := r.normalizeAll(apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// bookingsQuery selects one resource's appointments on the key's date with
// one of the given statuses. The owner column follows the resource kind.
func bookingsQuery(db *gorm.DB, key domain.ResourceKey, statuses []domain.Status) *gorm.DB {
	column := "doctor_id"
	if key.Kind == domain.ResourcePatient {
		column = "patient_id"
	}

	return db.
		Where(column+" = ? AND date = ? AND status IN ?",
			key.ID,
			key.Date.Format(dateLayout),
			domain.StatusStrings(statuses),
		).
		Order("start_time ASC")
}

func (r *AppointmentGormRepository) ListResourceBookings(
	ctx context.Context,
	key domain.ResourceKey,
	statuses []domain.Status,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := bookingsQuery(r.db.WithContext(ctx), key, statuses).Find(&apps).Error; err != nil {
		return nil, err
	}
	if err := r.normalizeAll(apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentGormRepository) ListWorkingHours(
	ctx context.Context,
	doctorID uint,
	weekday int,
) ([]models.WorkingHoursRule, error) {

	var rules []models.WorkingHoursRule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		Order("start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// --------------------------------------------------
// People
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("user_not_found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *AppointmentGormRepository) GetDoctorProfile(
	ctx context.Context,
	doctorID uint,
) (*models.DoctorProfile, error) {

	var p models.DoctorProfile
	if err := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("doctor_not_found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *AppointmentGormRepository) GetAuxiliaryDoctorID(
	ctx context.Context,
	auxiliaryID uint,
) (uint, error) {

	var link models.AuxiliaryLink
	if err := r.db.WithContext(ctx).Where("auxiliary_id = ?", auxiliaryID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, httperr.ErrNotFound("auxiliary_link_not_found")
		}
		return 0, err
	}
	return link.DoctorID, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
