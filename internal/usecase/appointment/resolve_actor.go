package appointment

import (
	"context"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
)

// ResolveActor turns an authenticated (user id, role) pair into an Actor,
// looking up the doctor an auxiliary works for.
type ResolveActor struct {
	repo domain.Repository
}

func NewResolveActor(repo domain.Repository) *ResolveActor {
	return &ResolveActor{repo: repo}
}

func (uc *ResolveActor) Execute(
	ctx context.Context,
	userID uint,
	role string,
) (identity.Actor, error) {

	r, err := identity.ParseRole(role)
	if err != nil {
		return identity.Actor{}, err
	}

	actor := identity.Actor{UserID: userID, Role: r}
	if r != identity.RoleAuxiliary {
		return actor, nil
	}

	doctorID, err := uc.repo.GetAuxiliaryDoctorID(ctx, userID)
	if err != nil {
		return identity.Actor{}, err
	}
	actor.AuxiliaryOf = doctorID
	return actor, nil
}
