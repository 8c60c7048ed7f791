package appointment

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cristiand11/portfolio-sub001/internal/audit"
	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/notification"
	"github.com/Cristiand11/portfolio-sub001/internal/timezone"
)

// Deps are the collaborators shared by every lifecycle use case.
type Deps struct {
	Repo     domain.Repository
	Clock    timezone.Clock
	Notifier notification.Notifier
	Audit    audit.Recorder
}

// ======================================================
// LOCK KEYS
// ======================================================

// lockKeys covers both resources on every date the appointment touches.
func lockKeys(doctorID, patientID uint, dates ...time.Time) []string {
	seen := map[string]bool{}
	var keys []string
	for _, d := range dates {
		for _, k := range []domain.ResourceKey{
			domain.DoctorResource(doctorID, d),
			domain.PatientResource(patientID, d),
		} {
			s := k.String()
			if !seen[s] {
				seen[s] = true
				keys = append(keys, s)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func appointmentKeys(ap *models.Appointment, extra ...time.Time) []string {
	dates := []time.Time{ap.Date}
	if ap.ProposedDate != nil {
		dates = append(dates, *ap.ProposedDate)
	}
	return lockKeys(ap.DoctorID, ap.PatientID, append(dates, extra...)...)
}

// missingKeys returns the keys in want that held does not contain.
func missingKeys(held, want []string) []string {
	have := make(map[string]bool, len(held))
	for _, k := range held {
		have[k] = true
	}
	var out []string
	for _, k := range want {
		if !have[k] {
			out = append(out, k)
		}
	}
	return out
}

func mergeKeys(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, k := range append(append([]string{}, a...), b...) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// maxLockAttempts bounds how often a transition widens its lock set when
// the record keeps moving to other dates under it.
const maxLockAttempts = 3

var errStaleLockSet = errors.New("appointment moved outside the held locks")

// withAppointmentLocks reloads the appointment under the locks of every
// date it touches (plus extra) and runs fn. The keys come from an unlocked
// read, so if the locked copy touches a date whose keys are not held the
// attempt is rolled back and retried with the wider set.
func withAppointmentLocks(
	ctx context.Context,
	d Deps,
	id uint,
	extra []time.Time,
	fn func(ctx context.Context, tx domain.Repository, ap *models.Appointment) error,
) error {

	current, err := d.Repo.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	keys := appointmentKeys(current, extra...)

	for attempt := 1; ; attempt++ {
		var missing []string
		err := d.Repo.WithinLockedTx(ctx, keys, func(ctx context.Context, tx domain.Repository) error {
			ap, err := tx.GetAppointment(ctx, id)
			if err != nil {
				return err
			}
			if missing = missingKeys(keys, appointmentKeys(ap, extra...)); len(missing) > 0 {
				return errStaleLockSet
			}
			return fn(ctx, tx, ap)
		})
		if !errors.Is(err, errStaleLockSet) {
			return err
		}
		if attempt == maxLockAttempts {
			return httperr.ErrConflict("concurrent_update")
		}
		zerolog.Ctx(ctx).Debug().Uint("appointment_id", id).Strs("missing", missing).Msg("widening appointment locks")
		keys = mergeKeys(keys, missing)
	}
}

// ======================================================
// SLOT CHECKS
// ======================================================

// assertSlotFree runs working-hours and both conflict checks for a slot
// against a transaction-bound repository.
func assertSlotFree(
	ctx context.Context,
	tx domain.Repository,
	doctorID uint,
	patientID uint,
	date time.Time,
	startTime string,
	duration int,
	excludeID uint,
) error {

	ok, err := domain.NewWorkingHoursValidator(tx).IsWithinWorkingHours(ctx, doctorID, date, startTime, duration)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrConflict("outside_working_hours")
	}

	detector := domain.NewSlotConflictDetector(tx)

	busy, err := detector.HasConflict(ctx, domain.DoctorResource(doctorID, date), startTime, duration, domain.BusyStatuses, excludeID)
	if err != nil {
		return err
	}
	if busy {
		return httperr.ErrConflict("doctor_time_conflict")
	}

	busy, err = detector.HasConflict(ctx, domain.PatientResource(patientID, date), startTime, duration, domain.BusyStatuses, excludeID)
	if err != nil {
		return err
	}
	if busy {
		return httperr.ErrConflict("patient_time_conflict")
	}
	return nil
}

// ======================================================
// TRANSITIONS
// ======================================================

type applyFunc func(
	ctx context.Context,
	tx domain.Repository,
	ap *models.Appointment,
	c domain.Capability,
	now time.Time,
) error

type transitionResult struct {
	ap      *models.Appointment
	from    domain.Status
	cap     domain.Capability
	expired error
}

// runTransition loads the appointment under lock, authorizes the actor and
// applies fn. An ExpiredError from fn is not a failure of the transaction:
// the record is saved as Expired and the error is handed back in
// transitionResult.expired.
func runTransition(
	ctx context.Context,
	d Deps,
	id uint,
	actor identity.Actor,
	t domain.Transition,
	fn applyFunc,
) (*transitionResult, error) {

	now := d.Clock.Now()
	res := &transitionResult{}

	err := withAppointmentLocks(ctx, d, id, nil, func(ctx context.Context, tx domain.Repository, ap *models.Appointment) error {
		from := domain.Status(ap.Status)
		c, err := domain.Authorize(t, from, ap, actor)
		if err != nil {
			return err
		}

		if err := fn(ctx, tx, ap, c, now); err != nil {
			if !httperr.IsKind(err, httperr.KindExpired) {
				return err
			}
			res.expired = err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		res.ap, res.from, res.cap = ap, from, c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ======================================================
// SIDE EFFECTS
// ======================================================

func counterpart(p domain.Party) domain.Party {
	if p == domain.PartyPatient {
		return domain.PartyProvider
	}
	return domain.PartyPatient
}

// announce notifies the given parties. It runs after commit and never fails
// the caller; lookup errors are only logged.
func announce(ctx context.Context, d Deps, ev notification.Event, ap *models.Appointment, parties ...domain.Party) {
	var recipients []*models.User
	for _, p := range parties {
		id := ap.PatientID
		if p == domain.PartyProvider {
			id = ap.DoctorID
		}
		u, err := d.Repo.GetUser(ctx, id)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Uint("user_id", id).Msg("notification recipient lookup failed")
			continue
		}
		recipients = append(recipients, u)
	}
	d.Notifier.Notify(notification.Compose(ev, ap, recipients...)...)
}

func record(d Deps, actor identity.Actor, action string, ap *models.Appointment, meta any) {
	actorID := actor.UserID
	entityID := ap.ID
	d.Audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &entityID,
		Metadata: meta,
	})
}

func statusChange(from domain.Status, ap *models.Appointment) map[string]string {
	return map[string]string{"from": string(from), "to": ap.Status}
}

// finish emits the side effects of a committed transition. When the record
// expired instead, both parties are told and the ExpiredError is returned.
func finish(
	ctx context.Context,
	d Deps,
	actor identity.Actor,
	res *transitionResult,
	action string,
	ev notification.Event,
) (*models.Appointment, error) {

	if res.expired != nil {
		record(d, actor, "appointment.expired", res.ap, statusChange(res.from, res.ap))
		announce(ctx, d, notification.EventExpired, res.ap, domain.PartyPatient, domain.PartyProvider)
		return nil, res.expired
	}

	record(d, actor, action, res.ap, statusChange(res.from, res.ap))
	announce(ctx, d, ev, res.ap, counterpart(res.cap.Party()))
	return res.ap, nil
}
