package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

// ReplaceWorkingHours deletes and re-inserts the doctor's rules in one
// transaction. Any failure rolls back to the previous set.
func (r *AppointmentGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	doctorID uint,
	rules []models.WorkingHoursRule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockKeys(tx, []string{fmt.Sprintf("schedule:%d", doctorID)}); err != nil {
			return err
		}

		if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.WorkingHoursRule{}).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	})
}

func (r *AppointmentGormRepository) ListAllWorkingHours(
	ctx context.Context,
	doctorID uint,
) ([]models.WorkingHoursRule, error) {

	var rules []models.WorkingHoursRule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("weekday ASC").
		Order("start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

var _ domain.ScheduleRepository = (*AppointmentGormRepository)(nil)
