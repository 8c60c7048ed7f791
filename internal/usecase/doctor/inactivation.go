package doctor

import (
	"context"

	"github.com/Cristiand11/portfolio-sub001/internal/audit"
	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/doctor"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/timezone"
)

type Deps struct {
	Repo      domain.Repository
	Clock     timezone.Clock
	Audit     audit.Recorder
	GraceDays int
}

func (d Deps) grace() int {
	if d.GraceDays <= 0 {
		return domain.DefaultGraceDays
	}
	return d.GraceDays
}

func record(d Deps, actor identity.Actor, action string, doctorID uint) {
	actorID, entityID := actor.UserID, doctorID
	d.Audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   action,
		Entity:   "doctor",
		EntityID: &entityID,
	})
}

// ======================================================
// REQUEST
// ======================================================

type RequestInactivation struct {
	Deps
}

func NewRequestInactivation(d Deps) *RequestInactivation {
	return &RequestInactivation{Deps: d}
}

func (uc *RequestInactivation) Execute(
	ctx context.Context,
	actor identity.Actor,
	doctorID uint,
) (*models.DoctorProfile, error) {

	if err := domain.Authorize(domain.ActionRequestInactivation, actor); err != nil {
		return nil, err
	}

	now := uc.Clock.Now()
	var profile *models.DoctorProfile

	err := uc.Repo.WithinTx(ctx, func(ctx context.Context, tx domain.Repository) error {
		user, p, err := tx.GetDoctorForUpdate(ctx, doctorID)
		if err != nil {
			return err
		}
		if err := domain.RequestInactivation(user, p, now); err != nil {
			return err
		}
		profile = p
		return tx.SaveDoctor(ctx, user, p)
	})
	if err != nil {
		return nil, err
	}

	record(uc.Deps, actor, "doctor.inactivation_requested", doctorID)
	return profile, nil
}

// ======================================================
// REVERT
// ======================================================

type RevertInactivation struct {
	Deps
}

func NewRevertInactivation(d Deps) *RevertInactivation {
	return &RevertInactivation{Deps: d}
}

// Execute clears a pending request. Past the grace period the request is
// finalized instead, committed, and ExpiredError returned.
func (uc *RevertInactivation) Execute(
	ctx context.Context,
	actor identity.Actor,
	doctorID uint,
) (*models.DoctorProfile, error) {

	if err := domain.Authorize(domain.ActionRevertInactivation, actor); err != nil {
		return nil, err
	}

	now := uc.Clock.Now()
	var (
		profile *models.DoctorProfile
		outcome error
	)

	err := uc.Repo.WithinTx(ctx, func(ctx context.Context, tx domain.Repository) error {
		user, p, err := tx.GetDoctorForUpdate(ctx, doctorID)
		if err != nil {
			return err
		}

		finalized, err := domain.Revert(user, p, now, uc.grace())
		if err != nil && !finalized {
			return err
		}
		outcome = err
		profile = p
		return tx.SaveDoctor(ctx, user, p)
	})
	if err != nil {
		return nil, err
	}

	if outcome != nil {
		record(uc.Deps, actor, "doctor.inactivation_finalized", doctorID)
		return nil, outcome
	}

	record(uc.Deps, actor, "doctor.inactivation_reverted", doctorID)
	return profile, nil
}

// ======================================================
// DASHBOARD
// ======================================================

type InactivationMetric struct {
	Days  int `json:"days"`
	Count int `json:"count"`
}

type PendingInactivationMetric struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewPendingInactivationMetric(repo domain.Repository, clock timezone.Clock) *PendingInactivationMetric {
	return &PendingInactivationMetric{repo: repo, clock: clock}
}

// Execute counts pending requests raised within the last `days` business
// days.
func (uc *PendingInactivationMetric) Execute(
	ctx context.Context,
	actor identity.Actor,
	days int,
) (*InactivationMetric, error) {

	if err := domain.Authorize(domain.ActionViewMetrics, actor); err != nil {
		return nil, err
	}
	if days < 0 {
		return nil, httperr.ErrValidation("invalid_days")
	}

	pending, err := uc.repo.ListPendingInactivations(ctx)
	if err != nil {
		return nil, err
	}

	return &InactivationMetric{
		Days:  days,
		Count: domain.CountRequestedWithin(pending, uc.clock.Now(), days),
	}, nil
}
