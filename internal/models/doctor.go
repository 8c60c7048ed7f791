package models

import "time"

type DoctorProfile struct {
	DoctorID uint `gorm:"primaryKey;autoIncrement:false" json:"doctor_id"`
	Doctor   User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DefaultDurationMinutes  int `gorm:"default:30" json:"default_duration_minutes"`
	CancellationNoticeHours int `gorm:"default:24" json:"cancellation_notice_hours"`

	InactivationRequestedAt *time.Time `json:"inactivation_requested_at"`
	InactivatedAt           *time.Time `json:"inactivated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuxiliaryLink delegates scheduling authority from one doctor to an
// auxiliary account. Each auxiliary belongs to exactly one doctor.
type AuxiliaryLink struct {
	AuxiliaryID uint `gorm:"primaryKey;autoIncrement:false" json:"auxiliary_id"`
	DoctorID    uint `gorm:"not null;index" json:"doctor_id"`

	CreatedAt time.Time `json:"created_at"`
}
