package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID  uint `gorm:"not null;index:idx_appointments_doctor_date,priority:1" json:"doctor_id"`
	PatientID uint `gorm:"not null;index:idx_appointments_patient_date,priority:1" json:"patient_id"`

	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
	Patient User `gorm:"foreignKey:PatientID" json:"-"`

	Date            time.Time `gorm:"type:date;not null;index:idx_appointments_doctor_date,priority:2;index:idx_appointments_patient_date,priority:2" json:"date"`
	StartTime       string    `gorm:"size:5;not null" json:"start_time"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`

	Status string `gorm:"size:40;not null;index" json:"status"`

	ProposedDate *time.Time `gorm:"type:date" json:"proposed_date"`
	ProposedTime *string    `gorm:"size:5" json:"proposed_time"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
