package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/doctor"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type DoctorGormRepository struct {
	db  *gorm.DB
	loc *time.Location
}

func NewDoctorGormRepository(db *gorm.DB, loc *time.Location) *DoctorGormRepository {
	return &DoctorGormRepository{db: db, loc: loc}
}

// normalizeProfile moves the workflow timestamps into the operating
// timezone; the driver hands timestamptz back in its own location.
func (r *DoctorGormRepository) normalizeProfile(p *models.DoctorProfile) {
	if p.InactivationRequestedAt != nil {
		t := p.InactivationRequestedAt.In(r.loc)
		p.InactivationRequestedAt = &t
	}
	if p.InactivatedAt != nil {
		t := p.InactivatedAt.In(r.loc)
		p.InactivatedAt = &t
	}
}

func (r *DoctorGormRepository) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, repo domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &DoctorGormRepository{db: tx, loc: r.loc})
	})
}

func (r *DoctorGormRepository) GetDoctorForUpdate(
	ctx context.Context,
	doctorID uint,
) (*models.User, *models.DoctorProfile, error) {

	locked := func() *gorm.DB {
		return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var u models.User
	if err := locked().Where("id = ? AND role = ?", doctorID, "doctor").First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, httperr.ErrNotFound("doctor_not_found")
		}
		return nil, nil, err
	}

	var p models.DoctorProfile
	if err := locked().Where("doctor_id = ?", doctorID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, httperr.ErrNotFound("doctor_not_found")
		}
		return nil, nil, err
	}
	r.normalizeProfile(&p)

	return &u, &p, nil
}

func (r *DoctorGormRepository) SaveDoctor(
	ctx context.Context,
	user *models.User,
	profile *models.DoctorProfile,
) error {

	db := r.db.WithContext(ctx)
	if err := db.Model(user).Update("active", user.Active).Error; err != nil {
		return err
	}
	return db.Model(profile).
		Select("inactivation_requested_at", "inactivated_at").
		Updates(profile).Error
}

func (r *DoctorGormRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("user_not_found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *DoctorGormRepository) ListPendingInactivations(
	ctx context.Context,
) ([]models.DoctorProfile, error) {

	var out []models.DoctorProfile
	if err := r.db.WithContext(ctx).
		Where("inactivation_requested_at IS NOT NULL AND inactivated_at IS NULL").
		Order("inactivation_requested_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		r.normalizeProfile(&out[i])
	}
	return out, nil
}

var _ domain.Repository = (*DoctorGormRepository)(nil)
