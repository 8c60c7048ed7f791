package appointment

import "github.com/Cristiand11/portfolio-sub001/internal/httperr"

// ===============================
// Appointment Status
// ===============================

// Status names whose turn it is: RequestedByDoctor waits on the doctor,
// ReschedulePendingByPatient waits on the patient, and so on.
type Status string

const (
	StatusRequestedByDoctor          Status = "requested_by_doctor"
	StatusRequestedByPatient         Status = "requested_by_patient"
	StatusConfirmed                  Status = "confirmed"
	StatusReschedulePendingByDoctor  Status = "reschedule_pending_by_doctor"
	StatusReschedulePendingByPatient Status = "reschedule_pending_by_patient"
	StatusCancelledByPatient         Status = "cancelled_by_patient"
	StatusCancelledByProvider        Status = "cancelled_by_provider"
	StatusCompleted                  Status = "completed"
	StatusExpired                    Status = "expired"
)

var allStatuses = []Status{
	StatusRequestedByDoctor,
	StatusRequestedByPatient,
	StatusConfirmed,
	StatusReschedulePendingByDoctor,
	StatusReschedulePendingByPatient,
	StatusCancelledByPatient,
	StatusCancelledByProvider,
	StatusCompleted,
	StatusExpired,
}

// BusyStatuses occupy a calendar slot for conflict purposes.
var BusyStatuses = []Status{
	StatusRequestedByDoctor,
	StatusRequestedByPatient,
	StatusConfirmed,
	StatusReschedulePendingByDoctor,
	StatusReschedulePendingByPatient,
	StatusCompleted,
}

// ParseStatus rejects anything outside the closed set. Repositories call it
// on every row they load.
func ParseStatus(s string) (Status, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.ErrValidation("invalid_status")
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelledByPatient, StatusCancelledByProvider, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

func (s Status) IsRequested() bool {
	return s == StatusRequestedByDoctor || s == StatusRequestedByPatient
}

func (s Status) IsReschedulePending() bool {
	return s == StatusReschedulePendingByDoctor || s == StatusReschedulePendingByPatient
}

// HasProposal reports whether the proposed date/time fields must be set.
func (s Status) HasProposal() bool {
	return s.IsReschedulePending()
}

func StatusStrings(sts []Status) []string {
	out := make([]string, len(sts))
	for i, s := range sts {
		out[i] = string(s)
	}
	return out
}
