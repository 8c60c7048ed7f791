package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cristiand11/portfolio-sub001/internal/audit"
	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type memSchedule struct {
	users   map[uint]models.User
	rules   map[uint][]models.WorkingHoursRule
	failing bool
	writes  int
}

func (m *memSchedule) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	return &u, nil
}

// ReplaceWorkingHours only publishes the new set when the whole write
// succeeds.
func (m *memSchedule) ReplaceWorkingHours(_ context.Context, doctorID uint, rules []models.WorkingHoursRule) error {
	m.writes++
	if m.failing {
		return errors.New("insert failed")
	}
	m.rules[doctorID] = rules
	return nil
}

func (m *memSchedule) ListAllWorkingHours(_ context.Context, doctorID uint) ([]models.WorkingHoursRule, error) {
	return m.rules[doctorID], nil
}

type nopAudit struct{ n int }

func (a *nopAudit) Dispatch(audit.Event) { a.n++ }

func newSchedule() *memSchedule {
	return &memSchedule{
		users: map[uint]models.User{
			1: {ID: 1, Role: "doctor", Active: true},
			2: {ID: 2, Role: "patient", Active: true},
		},
		rules: map[uint][]models.WorkingHoursRule{
			1: {{DoctorID: 1, Weekday: 1, StartTime: "08:00", EndTime: "12:00"}},
		},
	}
}

var doctor = identity.Actor{UserID: 1, Role: identity.RoleDoctor}

func TestReplace_Succeeds(t *testing.T) {
	repo, rec := newSchedule(), &nopAudit{}

	rules, err := NewReplaceWeeklySchedule(repo, rec).Execute(context.Background(), ReplaceWeeklyScheduleInput{
		Actor:    doctor,
		DoctorID: 1,
		Rules: []domain.WeeklyRule{
			{Weekday: 2, StartTime: "14:00", EndTime: "18:00"},
			{Weekday: 2, StartTime: "08:00", EndTime: "12:00"},
		},
	})

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "08:00", rules[0].StartTime)
	assert.Equal(t, rules, repo.rules[1])
	assert.Equal(t, 1, rec.n)
}

func TestReplace_OverlapKeepsPriorSchedule(t *testing.T) {
	repo := newSchedule()
	prior := repo.rules[1]

	_, err := NewReplaceWeeklySchedule(repo, &nopAudit{}).Execute(context.Background(), ReplaceWeeklyScheduleInput{
		Actor:    doctor,
		DoctorID: 1,
		Rules: []domain.WeeklyRule{
			{Weekday: 1, StartTime: "08:00", EndTime: "12:00"},
			{Weekday: 1, StartTime: "11:00", EndTime: "14:00"},
		},
	})

	assert.True(t, httperr.IsBusiness(err, "overlapping_working_hours"))
	assert.Equal(t, prior, repo.rules[1])
	assert.Zero(t, repo.writes)
}

func TestReplace_StoreFailureKeepsPriorSchedule(t *testing.T) {
	repo := newSchedule()
	repo.failing = true
	prior := repo.rules[1]

	_, err := NewReplaceWeeklySchedule(repo, &nopAudit{}).Execute(context.Background(), ReplaceWeeklyScheduleInput{
		Actor:    doctor,
		DoctorID: 1,
		Rules:    []domain.WeeklyRule{{Weekday: 3, StartTime: "08:00", EndTime: "12:00"}},
	})

	assert.Error(t, err)
	assert.Equal(t, prior, repo.rules[1])
}

func TestReplace_Authorization(t *testing.T) {
	cases := []struct {
		name  string
		actor identity.Actor
		ok    bool
	}{
		{"owner doctor", doctor, true},
		{"auxiliary of doctor", identity.Actor{UserID: 4, Role: identity.RoleAuxiliary, AuxiliaryOf: 1}, true},
		{"administrator", identity.Actor{UserID: 9, Role: identity.RoleAdministrator}, true},
		{"other doctor", identity.Actor{UserID: 5, Role: identity.RoleDoctor}, false},
		{"patient", identity.Actor{UserID: 2, Role: identity.RolePatient}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReplaceWeeklySchedule(newSchedule(), &nopAudit{}).Execute(context.Background(), ReplaceWeeklyScheduleInput{
				Actor:    tc.actor,
				DoctorID: 1,
				Rules:    []domain.WeeklyRule{{Weekday: 1, StartTime: "09:00", EndTime: "10:00"}},
			})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
			}
		})
	}
}

func TestReplace_InvalidTime(t *testing.T) {
	_, err := NewReplaceWeeklySchedule(newSchedule(), &nopAudit{}).Execute(context.Background(), ReplaceWeeklyScheduleInput{
		Actor:    doctor,
		DoctorID: 1,
		Rules:    []domain.WeeklyRule{{Weekday: 1, StartTime: "12:00", EndTime: "09:00"}},
	})

	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestGetWeeklySchedule(t *testing.T) {
	rules, err := NewGetWeeklySchedule(newSchedule()).Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, rules, 1)
}
