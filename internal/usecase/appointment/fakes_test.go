package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Cristiand11/portfolio-sub001/internal/audit"
	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/notification"
	"github.com/Cristiand11/portfolio-sub001/internal/timezone"
)

// memRepo is an in-memory domain.Repository. WithinLockedTx serializes
// callers on one mutex and restores the appointment table when fn fails.
type memRepo struct {
	txMu sync.Mutex

	mu           sync.Mutex
	nextID       uint
	appointments map[uint]models.Appointment
	users        map[uint]models.User
	profiles     map[uint]models.DoctorProfile
	auxiliaries  map[uint]uint
	rules        []models.WorkingHoursRule
	lockedKeys   [][]string
}

func newMemRepo() *memRepo {
	return &memRepo{
		appointments: map[uint]models.Appointment{},
		users:        map[uint]models.User{},
		profiles:     map[uint]models.DoctorProfile{},
		auxiliaries:  map[uint]uint{},
	}
}

var _ domain.Repository = (*memRepo)(nil)

func (r *memRepo) WithinLockedTx(
	ctx context.Context,
	keys []string,
	fn func(ctx context.Context, repo domain.Repository) error,
) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	r.lockedKeys = append(r.lockedKeys, keys)
	snapshot := make(map[uint]models.Appointment, len(r.appointments))
	for k, v := range r.appointments {
		snapshot[k] = v
	}
	r.mu.Unlock()

	if err := fn(ctx, r); err != nil {
		r.mu.Lock()
		r.appointments = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *memRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return &ap, nil
}

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memRepo) ListAppointmentsForPeriod(_ context.Context, f domain.PeriodFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.DoctorID != 0 && ap.DoctorID != f.DoctorID {
			continue
		}
		if f.PatientID != 0 && ap.PatientID != f.PatientID {
			continue
		}
		if ap.Date.Before(f.From) || !ap.Date.Before(f.To) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) ListResourceBookings(_ context.Context, key domain.ResourceKey, statuses []domain.Status) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		owner := ap.DoctorID
		if key.Kind == domain.ResourcePatient {
			owner = ap.PatientID
		}
		if owner != key.ID || !domain.SameDate(ap.Date, key.Date) {
			continue
		}
		for _, s := range statuses {
			if ap.Status == string(s) {
				out = append(out, ap)
				break
			}
		}
	}
	return out, nil
}

func (r *memRepo) ListWorkingHours(_ context.Context, doctorID uint, weekday int) ([]models.WorkingHoursRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WorkingHoursRule
	for _, rule := range r.rules {
		if rule.DoctorID == doctorID && rule.Weekday == weekday {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *memRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	return &u, nil
}

func (r *memRepo) GetDoctorProfile(_ context.Context, doctorID uint) (*models.DoctorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[doctorID]
	if !ok {
		return nil, httperr.ErrNotFound("doctor_not_found")
	}
	return &p, nil
}

func (r *memRepo) GetAuxiliaryDoctorID(_ context.Context, auxiliaryID uint) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.auxiliaries[auxiliaryID]
	if !ok {
		return 0, httperr.ErrNotFound("auxiliary_link_not_found")
	}
	return id, nil
}

func (r *memRepo) stored(id uint) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appointments[id]
}

func (r *memRepo) seed(ap models.Appointment) uint {
	_ = r.CreateAppointment(context.Background(), &ap)
	return ap.ID
}

// ---- side-effect recorders ----

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notification.Message
}

func (n *recordingNotifier) Notify(msgs ...notification.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msgs...)
}

func (n *recordingNotifier) recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.msgs))
	for _, m := range n.msgs {
		out = append(out, m.To)
	}
	return out
}

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}

// ---- fixture ----

const (
	doctorID      uint = 1
	patientID     uint = 2
	otherPatient  uint = 3
	auxiliaryID   uint = 4
	otherDoctorID uint = 5
	adminID       uint = 9
)

// 2026-03-02 is a Monday.
var (
	monday    = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	wednesday = monday.AddDate(0, 0, 2)
)

type fixture struct {
	repo     *memRepo
	clock    *timezone.FixedClock
	notifier *recordingNotifier
	audit    *recordingAudit
	deps     Deps
}

func newFixture() *fixture {
	r := newMemRepo()

	r.users[doctorID] = models.User{ID: doctorID, Name: "Dr. Lima", Email: "doctor@clinic.io", Role: "doctor", Active: true}
	r.users[otherDoctorID] = models.User{ID: otherDoctorID, Name: "Dr. Reis", Email: "reis@clinic.io", Role: "doctor", Active: true}
	r.users[patientID] = models.User{ID: patientID, Name: "Ana", Email: "ana@mail.io", Role: "patient", Active: true}
	r.users[otherPatient] = models.User{ID: otherPatient, Name: "Bruno", Email: "bruno@mail.io", Role: "patient", Active: true}
	r.users[auxiliaryID] = models.User{ID: auxiliaryID, Name: "Carla", Email: "carla@clinic.io", Role: "auxiliary", Active: true}
	r.users[adminID] = models.User{ID: adminID, Name: "Root", Email: "admin@clinic.io", Role: "administrator", Active: true}

	for _, id := range []uint{doctorID, otherDoctorID} {
		r.profiles[id] = models.DoctorProfile{DoctorID: id, DefaultDurationMinutes: 30, CancellationNoticeHours: 24}
		for _, wd := range []int{1, 2, 3, 4, 5} {
			r.rules = append(r.rules, models.WorkingHoursRule{DoctorID: id, Weekday: wd, StartTime: "09:00", EndTime: "17:00"})
		}
	}
	r.auxiliaries[auxiliaryID] = doctorID

	f := &fixture{
		repo:     r,
		clock:    &timezone.FixedClock{At: monday.Add(8 * time.Hour)},
		notifier: &recordingNotifier{},
		audit:    &recordingAudit{},
	}
	f.deps = Deps{Repo: r, Clock: f.clock, Notifier: f.notifier, Audit: f.audit}
	return f
}

func (f *fixture) seedAppointment(date time.Time, start string, status domain.Status) uint {
	return f.repo.seed(models.Appointment{
		DoctorID:        doctorID,
		PatientID:       patientID,
		Date:            date,
		StartTime:       start,
		DurationMinutes: 30,
		Status:          string(status),
	})
}

func (f *fixture) seedProposal(date time.Time, start string, status domain.Status, pDate time.Time, pTime string) uint {
	return f.repo.seed(models.Appointment{
		DoctorID:        doctorID,
		PatientID:       patientID,
		Date:            date,
		StartTime:       start,
		DurationMinutes: 30,
		Status:          string(status),
		ProposedDate:    &pDate,
		ProposedTime:    &pTime,
	})
}

// modelsAt is a confirmed booking of the fixture doctor for another patient.
func modelsAt(date time.Time, start string, patient uint) models.Appointment {
	return models.Appointment{
		DoctorID:        doctorID,
		PatientID:       patient,
		Date:            date,
		StartTime:       start,
		DurationMinutes: 30,
		Status:          string(domain.StatusConfirmed),
	}
}

func ruleFor(doctor uint, weekday int, start, end string) models.WorkingHoursRule {
	return models.WorkingHoursRule{DoctorID: doctor, Weekday: weekday, StartTime: start, EndTime: end}
}
