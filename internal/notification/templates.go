package notification

import (
	"fmt"

	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type Event string

const (
	EventCreated             Event = "created"
	EventConfirmed           Event = "confirmed"
	EventRejected            Event = "rejected"
	EventCancelled           Event = "cancelled"
	EventCompleted           Event = "completed"
	EventRescheduleRequested Event = "reschedule_requested"
	EventExpired             Event = "expired"
)

var subjects = map[Event]string{
	EventCreated:             "New appointment request",
	EventConfirmed:           "Appointment confirmed",
	EventRejected:            "Appointment request rejected",
	EventCancelled:           "Appointment cancelled",
	EventCompleted:           "Appointment completed",
	EventRescheduleRequested: "Reschedule requested",
	EventExpired:             "Appointment request expired",
}

func slot(ap *models.Appointment) string {
	return fmt.Sprintf("%s at %s", ap.Date.Format("2006-01-02"), ap.StartTime)
}

func body(ev Event, ap *models.Appointment) string {
	switch ev {
	case EventCreated:
		return fmt.Sprintf("Appointment #%d was requested for %s (%d min). Please confirm or reject it.",
			ap.ID, slot(ap), ap.DurationMinutes)
	case EventConfirmed:
		return fmt.Sprintf("Appointment #%d is confirmed for %s.", ap.ID, slot(ap))
	case EventRejected:
		return fmt.Sprintf("Appointment #%d for %s was rejected.", ap.ID, slot(ap))
	case EventCancelled:
		return fmt.Sprintf("Appointment #%d for %s was cancelled.", ap.ID, slot(ap))
	case EventCompleted:
		return fmt.Sprintf("Appointment #%d on %s was marked as completed.", ap.ID, slot(ap))
	case EventRescheduleRequested:
		proposed := "a new time"
		if ap.ProposedDate != nil && ap.ProposedTime != nil {
			proposed = fmt.Sprintf("%s at %s", ap.ProposedDate.Format("2006-01-02"), *ap.ProposedTime)
		}
		return fmt.Sprintf("Appointment #%d (%s) has a reschedule proposal for %s. Please confirm or reject it.",
			ap.ID, slot(ap), proposed)
	case EventExpired:
		return fmt.Sprintf("Appointment #%d for %s expired without an answer.", ap.ID, slot(ap))
	}
	return fmt.Sprintf("Appointment #%d was updated.", ap.ID)
}

// Compose renders one message per recipient. Recipients without an e-mail
// are skipped.
func Compose(ev Event, ap *models.Appointment, recipients ...*models.User) []Message {
	msgs := make([]Message, 0, len(recipients))
	for _, r := range recipients {
		if r == nil || r.Email == "" {
			continue
		}
		msgs = append(msgs, Message{
			RecipientID: r.ID,
			To:          r.Email,
			Subject:     subjects[ev],
			Body:        body(ev, ap),
		})
	}
	return msgs
}
