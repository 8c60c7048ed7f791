package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Cristiand11/portfolio-sub001/internal/audit"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/doctor"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/timezone"
	"github.com/Cristiand11/portfolio-sub001/internal/token"
)

type memAccounts struct {
	mu       sync.Mutex
	users    map[uint]models.User
	profiles map[uint]models.DoctorProfile
}

var _ doctor.Repository = (*memAccounts)(nil)

func (m *memAccounts) WithinTx(ctx context.Context, fn func(ctx context.Context, repo doctor.Repository) error) error {
	return fn(ctx, m)
}

func (m *memAccounts) GetDoctorForUpdate(_ context.Context, id uint) (*models.User, *models.DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, p := m.users[id], m.profiles[id]
	return &u, &p, nil
}

func (m *memAccounts) SaveDoctor(_ context.Context, u *models.User, p *models.DoctorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	m.profiles[p.DoctorID] = *p
	return nil
}

func (m *memAccounts) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, httperr.ErrNotFound("user_not_found")
}

func (m *memAccounts) ListPendingInactivations(context.Context) ([]models.DoctorProfile, error) {
	return nil, nil
}

// 2026-03-02 is a Monday.
var requestedAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func accounts(t *testing.T) *memAccounts {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	at := requestedAt
	return &memAccounts{
		users: map[uint]models.User{
			1: {ID: 1, Email: "doc@clinic.io", PasswordHash: string(hash), Role: "doctor", Active: true},
			2: {ID: 2, Email: "ana@mail.io", PasswordHash: string(hash), Role: "patient", Active: true},
			3: {ID: 3, Email: "old@mail.io", PasswordHash: string(hash), Role: "patient", Active: false},
		},
		profiles: map[uint]models.DoctorProfile{
			1: {DoctorID: 1, InactivationRequestedAt: &at},
		},
	}
}

func newLogin(repo *memAccounts, now time.Time) *Login {
	return NewLogin(repo, token.NewIssuer("secret", time.Hour), &timezone.FixedClock{At: now}, audit.Nop{}, 5)
}

func TestLogin_Patient(t *testing.T) {
	out, err := newLogin(accounts(t), requestedAt).Execute(context.Background(), LoginInput{Email: " ANA@mail.io ", Password: "s3cret"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, uint(2), out.User.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := accounts(t)

	_, err := newLogin(repo, requestedAt).Execute(context.Background(), LoginInput{Email: "ana@mail.io", Password: "nope"})
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = newLogin(repo, requestedAt).Execute(context.Background(), LoginInput{Email: "who@mail.io", Password: "s3cret"})
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
}

func TestLogin_InactiveAccount(t *testing.T) {
	_, err := newLogin(accounts(t), requestedAt).Execute(context.Background(), LoginInput{Email: "old@mail.io", Password: "s3cret"})

	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestLogin_DoctorWithinGrace(t *testing.T) {
	repo := accounts(t)

	_, err := newLogin(repo, requestedAt.AddDate(0, 0, 7).Add(time.Minute)).Execute(context.Background(), LoginInput{Email: "doc@clinic.io", Password: "s3cret"})

	require.NoError(t, err)
	assert.True(t, repo.users[1].Active)
	assert.NotNil(t, repo.profiles[1].InactivationRequestedAt)
}

func TestLogin_DoctorPastGraceIsFinalized(t *testing.T) {
	repo := accounts(t)
	uc := newLogin(repo, requestedAt.AddDate(0, 0, 8).Add(time.Minute))

	_, err := uc.Execute(context.Background(), LoginInput{Email: "doc@clinic.io", Password: "s3cret"})
	assert.True(t, httperr.IsBusiness(err, "doctor_inactive"))
	assert.False(t, repo.users[1].Active)
	assert.Nil(t, repo.profiles[1].InactivationRequestedAt)

	_, err = uc.Execute(context.Background(), LoginInput{Email: "doc@clinic.io", Password: "s3cret"})
	assert.True(t, httperr.IsBusiness(err, "doctor_inactive"))
}
