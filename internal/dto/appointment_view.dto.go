package dto

import (
	"time"

	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

// AppointmentView is the public projection of an appointment. Dates are
// calendar dates in the operating timezone.
type AppointmentView struct {
	ID              uint       `json:"id"`
	DoctorID        uint       `json:"doctor_id"`
	DoctorName      string     `json:"doctor_name,omitempty"`
	PatientID       uint       `json:"patient_id"`
	PatientName     string     `json:"patient_name,omitempty"`
	Date            string     `json:"date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"`
	ProposedDate    *string    `json:"proposed_date,omitempty"`
	ProposedTime    *string    `json:"proposed_time,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func endClock(start string, minutes int) string {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return ""
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format("15:04")
}

func NewAppointmentView(ap *models.Appointment) AppointmentView {
	v := AppointmentView{
		ID:              ap.ID,
		DoctorID:        ap.DoctorID,
		DoctorName:      ap.Doctor.Name,
		PatientID:       ap.PatientID,
		PatientName:     ap.Patient.Name,
		Date:            ap.Date.Format("2006-01-02"),
		StartTime:       ap.StartTime,
		EndTime:         endClock(ap.StartTime, ap.DurationMinutes),
		DurationMinutes: ap.DurationMinutes,
		Status:          ap.Status,
		ProposedTime:    ap.ProposedTime,
		Notes:           ap.Notes,
		CancelledAt:     ap.CancelledAt,
		CompletedAt:     ap.CompletedAt,
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}
	if ap.ProposedDate != nil {
		d := ap.ProposedDate.Format("2006-01-02")
		v.ProposedDate = &d
	}
	return v
}

func NewAppointmentViews(aps []models.Appointment) []AppointmentView {
	out := make([]AppointmentView, 0, len(aps))
	for i := range aps {
		out = append(out, NewAppointmentView(&aps[i]))
	}
	return out
}
