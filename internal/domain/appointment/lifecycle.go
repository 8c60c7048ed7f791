package appointment

import (
	"time"

	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// InitialStatus is the status a new request starts in: a patient's request
// waits on the doctor, a provider's request waits on the patient.
func InitialStatus(p Party) Status {
	if p == PartyPatient {
		return StatusRequestedByDoctor
	}
	return StatusRequestedByPatient
}

func ScheduledStart(ap *models.Appointment, loc *time.Location) (time.Time, error) {
	return StartAt(ap.Date, ap.StartTime, loc)
}

func ProposedStart(ap *models.Appointment, loc *time.Location) (time.Time, error) {
	if ap.ProposedDate == nil || ap.ProposedTime == nil {
		return time.Time{}, httperr.ErrConflict("missing_proposal")
	}
	return StartAt(*ap.ProposedDate, *ap.ProposedTime, loc)
}

// deadline is the instant after which a pending record can no longer be
// answered: the original start for Requested*, the proposed start for
// ReschedulePending*. ok is false for every other status.
func deadline(ap *models.Appointment, loc *time.Location) (t time.Time, ok bool, err error) {
	st := Status(ap.Status)
	switch {
	case st.IsRequested():
		t, err = ScheduledStart(ap, loc)
		return t, true, err
	case st.IsReschedulePending():
		t, err = ProposedStart(ap, loc)
		return t, true, err
	}
	return time.Time{}, false, nil
}

// ExpireIfStale moves a pending record whose deadline has passed to Expired.
// It returns true when it did so.
func ExpireIfStale(ap *models.Appointment, now time.Time, loc *time.Location) (bool, error) {
	dl, ok, err := deadline(ap, loc)
	if err != nil || !ok {
		return false, err
	}
	if !now.After(dl) {
		return false, nil
	}
	ap.Status = string(StatusExpired)
	clearProposal(ap)
	return true, nil
}

func clearProposal(ap *models.Appointment) {
	ap.ProposedDate = nil
	ap.ProposedTime = nil
}

func expiredErr() error {
	return httperr.ErrExpired("appointment_expired")
}

// Confirm accepts a pending request or reschedule proposal. When the
// deadline has already passed the record becomes Expired and ExpiredError
// is returned; the caller must still persist the record.
func Confirm(ap *models.Appointment, now time.Time, loc *time.Location) error {
	st := Status(ap.Status)
	if !st.IsRequested() && !st.IsReschedulePending() {
		return httperr.ErrConflict("invalid_transition")
	}

	expired, err := ExpireIfStale(ap, now, loc)
	if err != nil {
		return err
	}
	if expired {
		return expiredErr()
	}

	if st.IsReschedulePending() {
		ap.Date = *ap.ProposedDate
		ap.StartTime = *ap.ProposedTime
		clearProposal(ap)
	}
	ap.Status = string(StatusConfirmed)
	return nil
}

// Reject declines a reschedule proposal. The original date and time are
// left untouched.
func Reject(ap *models.Appointment, now time.Time, loc *time.Location) error {
	if !Status(ap.Status).IsReschedulePending() {
		return httperr.ErrConflict("invalid_transition")
	}

	expired, err := ExpireIfStale(ap, now, loc)
	if err != nil {
		return err
	}
	if expired {
		return expiredErr()
	}

	clearProposal(ap)
	ap.Status = string(StatusConfirmed)
	return nil
}

// Cancel is allowed until the scheduled start. Patients must also respect
// the doctor's cancellation notice; providers have no notice requirement.
func Cancel(ap *models.Appointment, party Party, noticeHours int, now time.Time, loc *time.Location) error {
	st := Status(ap.Status)
	if st.IsTerminal() {
		return httperr.ErrConflict("invalid_transition")
	}

	expired, err := ExpireIfStale(ap, now, loc)
	if err != nil {
		return err
	}
	if expired {
		return expiredErr()
	}

	start, err := ScheduledStart(ap, loc)
	if err != nil {
		return err
	}
	if now.After(start) {
		return httperr.ErrConflict("appointment_already_started")
	}
	if party == PartyPatient && start.Sub(now) < time.Duration(noticeHours)*time.Hour {
		return httperr.ErrConflict("cancellation_notice_too_short")
	}

	if party == PartyPatient {
		ap.Status = string(StatusCancelledByPatient)
	} else {
		ap.Status = string(StatusCancelledByProvider)
	}
	clearProposal(ap)
	ap.CancelledAt = &now
	return nil
}

// Complete closes a confirmed appointment, dropping any open proposal.
// It never expires a stale reschedule; completion wins over the proposal.
func Complete(ap *models.Appointment, now time.Time) error {
	st := Status(ap.Status)
	if st != StatusConfirmed && !st.IsReschedulePending() {
		return httperr.ErrConflict("invalid_transition")
	}

	clearProposal(ap)
	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// RequestReschedule attaches a proposal to a confirmed appointment. Slot
// availability is checked by the caller.
func RequestReschedule(
	ap *models.Appointment,
	party Party,
	newDate time.Time,
	newTime string,
	now time.Time,
	loc *time.Location,
) error {

	if Status(ap.Status) != StatusConfirmed {
		return httperr.ErrConflict("invalid_transition")
	}

	start, err := ScheduledStart(ap, loc)
	if err != nil {
		return err
	}
	if now.After(start) {
		return httperr.ErrConflict("appointment_already_started")
	}

	proposed, err := StartAt(newDate, newTime, loc)
	if err != nil {
		return err
	}
	if !proposed.After(now) {
		return httperr.ErrValidation("slot_in_past")
	}

	d := time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, loc)
	t := newTime
	ap.ProposedDate = &d
	ap.ProposedTime = &t

	if party == PartyPatient {
		ap.Status = string(StatusReschedulePendingByDoctor)
	} else {
		ap.Status = string(StatusReschedulePendingByPatient)
	}
	return nil
}

// ValidateSlot checks the shape of a requested slot before any lookup.
func ValidateSlot(startTime string, durationMinutes int) error {
	if durationMinutes <= 0 {
		return httperr.ErrValidation("invalid_duration")
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return err
	}
	if start+durationMinutes > 24*60 {
		return httperr.ErrValidation("slot_crosses_midnight")
	}
	return nil
}
