package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Cristiand11/portfolio-sub001/internal/config"
	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDev() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates the tables and the partial unique indexes that back the
// advisory locks: no two busy appointments may start at the same instant
// for the same doctor or the same patient.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.DoctorProfile{},
		&models.AuxiliaryLink{},
		&models.Appointment{},
		&models.WorkingHoursRule{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range busySlotIndexes() {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

func busySlotIndexes() []string {
	quoted := make([]string, 0, len(domain.BusyStatuses))
	for _, s := range domain.StatusStrings(domain.BusyStatuses) {
		quoted = append(quoted, "'"+s+"'")
	}
	busy := strings.Join(quoted, ", ")

	return []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_doctor_busy_start
		   ON appointments (doctor_id, date, start_time)
		   WHERE status IN (` + busy + `)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_patient_busy_start
		   ON appointments (patient_id, date, start_time)
		   WHERE status IN (` + busy + `)`,
	}
}
