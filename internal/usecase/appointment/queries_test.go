package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
)

func TestListByDate_ScopedToActor(t *testing.T) {
	f := newFixture()
	f.seedAppointment(monday, "10:00", domain.StatusConfirmed)
	f.repo.seed(modelsAt(monday, "11:00", otherPatient))
	f.seedAppointment(wednesday, "10:00", domain.StatusConfirmed)

	uc := NewListAppointmentsByDate(f.repo, f.clock)

	mine, err := uc.Execute(context.Background(), ListScope{Actor: patientActor}, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "10:30", mine[0].EndTime)

	doctors, err := uc.Execute(context.Background(), ListScope{Actor: auxiliaryActor}, "2026-03-02")
	require.NoError(t, err)
	assert.Len(t, doctors, 2)
}

func TestListByDate_AdminNeedsFilter(t *testing.T) {
	f := newFixture()
	uc := NewListAppointmentsByDate(f.repo, f.clock)

	_, err := uc.Execute(context.Background(), ListScope{Actor: adminActor}, "2026-03-02")
	assert.True(t, httperr.IsBusiness(err, "missing_filter"))

	views, err := uc.Execute(context.Background(), ListScope{Actor: adminActor, DoctorID: doctorID}, "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListByMonth(t *testing.T) {
	f := newFixture()
	f.seedAppointment(monday, "10:00", domain.StatusConfirmed)
	f.seedAppointment(wednesday, "10:00", domain.StatusRequestedByDoctor)
	f.seedAppointment(monday.AddDate(0, 1, 0), "10:00", domain.StatusConfirmed)

	uc := NewListAppointmentsByMonth(f.repo, f.clock)

	views, err := uc.Execute(context.Background(), ListScope{Actor: doctorActor}, 2026, 3)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	_, err = uc.Execute(context.Background(), ListScope{Actor: doctorActor}, 2026, 13)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestGetAvailability(t *testing.T) {
	f := newFixture()
	f.repo.rules = nil
	f.repo.rules = append(f.repo.rules, ruleFor(doctorID, 1, "09:00", "11:00"))
	f.seedAppointment(monday, "09:30", domain.StatusConfirmed)

	slots, err := NewGetAvailability(f.repo, f.clock).Execute(context.Background(), doctorID, "2026-03-02", 0)

	require.NoError(t, err)
	assert.Equal(t, []domain.TimeSlot{{Start: "10:30", End: "11:00"}}, slots)
}

func TestGetAvailability_NotADoctor(t *testing.T) {
	f := newFixture()

	_, err := NewGetAvailability(f.repo, f.clock).Execute(context.Background(), patientID, "2026-03-02", 30)

	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestResolveActor(t *testing.T) {
	f := newFixture()
	uc := NewResolveActor(f.repo)

	a, err := uc.Execute(context.Background(), auxiliaryID, "auxiliary")
	require.NoError(t, err)
	assert.Equal(t, doctorID, a.AuxiliaryOf)

	a, err = uc.Execute(context.Background(), patientID, "patient")
	require.NoError(t, err)
	assert.Equal(t, identity.Actor{UserID: patientID, Role: identity.RolePatient}, a)

	_, err = uc.Execute(context.Background(), 77, "auxiliary")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	_, err = uc.Execute(context.Background(), 1, "nurse")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}
