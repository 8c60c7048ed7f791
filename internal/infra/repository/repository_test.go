package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

func TestSortedKeys(t *testing.T) {
	got := sortedKeys([]string{
		"patient:2:2026-03-02",
		"doctor:1:2026-03-04",
		"doctor:1:2026-03-02",
		"patient:2:2026-03-02",
	})

	assert.Equal(t, []string{
		"doctor:1:2026-03-02",
		"doctor:1:2026-03-04",
		"patient:2:2026-03-02",
	}, got)
}

func operatingLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata not available")
	}
	return loc
}

// --------------------------------------------------
// Row normalization
// --------------------------------------------------

func TestNormalize_RejectsUnknownStatus(t *testing.T) {
	r := &AppointmentGormRepository{loc: time.UTC}

	err := r.normalize(&models.Appointment{ID: 7, Status: "archived"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown status "archived"`)

	err = r.normalizeAll([]models.Appointment{
		{ID: 1, Status: string(domain.StatusConfirmed)},
		{ID: 2, Status: ""},
	})
	assert.Error(t, err)
}

func TestNormalize_ReanchorsDates(t *testing.T) {
	loc := operatingLocation(t)
	r := &AppointmentGormRepository{loc: loc}

	proposed := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	ap := &models.Appointment{
		Status:       string(domain.StatusReschedulePendingByDoctor),
		Date:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ProposedDate: &proposed,
	}

	require.NoError(t, r.normalize(ap))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, loc), ap.Date)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, loc), *ap.ProposedDate)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), proposed, "caller's value is not mutated")
}

func TestNormalizeProfile(t *testing.T) {
	loc := operatingLocation(t)
	r := &DoctorGormRepository{loc: loc}

	requested := time.Date(2026, 3, 7, 1, 0, 0, 0, time.UTC)
	p := &models.DoctorProfile{InactivationRequestedAt: &requested}

	r.normalizeProfile(p)

	require.NotNil(t, p.InactivationRequestedAt)
	assert.Equal(t, loc, p.InactivationRequestedAt.Location())
	assert.True(t, p.InactivationRequestedAt.Equal(requested))
	assert.Equal(t, time.Friday, p.InactivationRequestedAt.Weekday())
	assert.Nil(t, p.InactivatedAt)
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

// dryRun builds statements without a server.
func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=clinic dbname=clinic sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func bookingsSQL(db *gorm.DB, key domain.ResourceKey) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var apps []models.Appointment
		return bookingsQuery(tx, key, []domain.Status{domain.StatusConfirmed, domain.StatusCompleted}).Find(&apps)
	})
}

func TestBookingsQuery_OwnerColumn(t *testing.T) {
	db := dryRun(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	doctorSQL := bookingsSQL(db, domain.DoctorResource(1, date))
	assert.Contains(t, doctorSQL, "doctor_id = 1")
	assert.NotContains(t, doctorSQL, "patient_id")

	patientSQL := bookingsSQL(db, domain.PatientResource(2, date))
	assert.Contains(t, patientSQL, "patient_id = 2")
	assert.NotContains(t, patientSQL, "doctor_id")

	for _, sql := range []string{doctorSQL, patientSQL} {
		assert.Contains(t, sql, "date = '2026-03-02'")
		assert.Contains(t, sql, "'confirmed'")
		assert.Contains(t, sql, "'completed'")
		assert.Contains(t, sql, "ORDER BY start_time ASC")
	}
}
