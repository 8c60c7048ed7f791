package doctor

import (
	"context"
	"sync"

	"github.com/Cristiand11/portfolio-sub001/internal/audit"
	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/doctor"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type memDoctors struct {
	mu       sync.Mutex
	users    map[uint]models.User
	profiles map[uint]models.DoctorProfile
}

var _ domain.Repository = (*memDoctors)(nil)

func (m *memDoctors) WithinTx(ctx context.Context, fn func(ctx context.Context, repo domain.Repository) error) error {
	m.mu.Lock()
	users, profiles := copyMap(m.users), copyMap(m.profiles)
	m.mu.Unlock()

	if err := fn(ctx, m); err != nil {
		m.mu.Lock()
		m.users, m.profiles = users, profiles
		m.mu.Unlock()
		return err
	}
	return nil
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memDoctors) GetDoctorForUpdate(_ context.Context, id uint) (*models.User, *models.DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok1 := m.users[id]
	p, ok2 := m.profiles[id]
	if !ok1 || !ok2 {
		return nil, nil, httperr.ErrNotFound("doctor_not_found")
	}
	return &u, &p, nil
}

func (m *memDoctors) SaveDoctor(_ context.Context, u *models.User, p *models.DoctorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	m.profiles[p.DoctorID] = *p
	return nil
}

func (m *memDoctors) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, httperr.ErrNotFound("user_not_found")
}

func (m *memDoctors) ListPendingInactivations(_ context.Context) ([]models.DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DoctorProfile
	for _, p := range m.profiles {
		if p.InactivationRequestedAt != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

type auditLog struct {
	mu      sync.Mutex
	actions []string
}

func (a *auditLog) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, ev.Action)
}
