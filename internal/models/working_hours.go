package models

import "time"

type WorkingHoursRule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"not null;index:idx_working_hours_doctor_weekday,priority:1" json:"doctor_id"`

	Weekday int `gorm:"not null;index:idx_working_hours_doctor_weekday,priority:2" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
}

func (WorkingHoursRule) TableName() string {
	return "working_hours_rules"
}
