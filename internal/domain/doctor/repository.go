package doctor

import (
	"context"

	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type Repository interface {
	WithinTx(
		ctx context.Context,
		fn func(ctx context.Context, repo Repository) error,
	) error

	// GetDoctorForUpdate locks and returns the doctor's account and profile.
	GetDoctorForUpdate(
		ctx context.Context,
		doctorID uint,
	) (*models.User, *models.DoctorProfile, error)

	SaveDoctor(
		ctx context.Context,
		user *models.User,
		profile *models.DoctorProfile,
	) error

	GetUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	ListPendingInactivations(
		ctx context.Context,
	) ([]models.DoctorProfile, error)
}
