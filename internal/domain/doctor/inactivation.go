// Package doctor holds the delayed-deactivation workflow of doctor accounts.
// An administrator raises a request; it can be reverted for a grace period
// measured in business days, after which it is finalized the next time
// anyone looks (login or revert).
package doctor

import (
	"time"

	"github.com/Cristiand11/portfolio-sub001/internal/domain/businessday"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

// DefaultGraceDays is the revert window. Elapsed <= 5 permits revert,
// elapsed > 5 finalizes.
const DefaultGraceDays = 5

type Action string

const (
	ActionRequestInactivation Action = "request_inactivation"
	ActionRevertInactivation  Action = "revert_inactivation"
	ActionViewMetrics         Action = "view_inactivation_metrics"
)

var allowedRoles = map[Action][]identity.Role{
	ActionRequestInactivation: {identity.RoleAdministrator},
	ActionRevertInactivation:  {identity.RoleAdministrator},
	ActionViewMetrics:         {identity.RoleAdministrator},
}

func Authorize(action Action, actor identity.Actor) error {
	for _, r := range allowedRoles[action] {
		if actor.Is(r) {
			return nil
		}
	}
	return httperr.ErrForbidden("forbidden")
}

func RequestInactivation(user *models.User, p *models.DoctorProfile, now time.Time) error {
	if !user.Active {
		return httperr.ErrConflict("doctor_inactive")
	}
	if p.InactivationRequestedAt != nil {
		return httperr.ErrConflict("inactivation_already_requested")
	}
	p.InactivationRequestedAt = &now
	return nil
}

func finalize(user *models.User, p *models.DoctorProfile, now time.Time) {
	user.Active = false
	p.InactivatedAt = &now
	p.InactivationRequestedAt = nil
}

// GateLogin decides whether a doctor may log in. A request older than the
// grace period is finalized on the spot; finalized reports that the records
// were mutated and must be saved even though login is denied.
func GateLogin(user *models.User, p *models.DoctorProfile, now time.Time, graceDays int) (finalized bool, err error) {
	if !user.Active {
		return false, httperr.ErrForbidden("doctor_inactive")
	}
	if p.InactivationRequestedAt != nil && businessday.Exceeded(*p.InactivationRequestedAt, now, graceDays) {
		finalize(user, p, now)
		return true, httperr.ErrForbidden("doctor_inactive")
	}
	return false, nil
}

// Revert clears a pending request while still inside the grace period.
// Past it, the request is finalized and ExpiredError returned.
func Revert(user *models.User, p *models.DoctorProfile, now time.Time, graceDays int) (finalized bool, err error) {
	if !user.Active {
		return false, httperr.ErrConflict("doctor_inactive")
	}
	if p.InactivationRequestedAt == nil {
		return false, httperr.ErrConflict("no_pending_inactivation")
	}
	if businessday.Exceeded(*p.InactivationRequestedAt, now, graceDays) {
		finalize(user, p, now)
		return true, httperr.ErrExpired("inactivation_grace_elapsed")
	}
	p.InactivationRequestedAt = nil
	return false, nil
}

// CountRequestedWithin counts pending requests raised no more than `days`
// business days ago.
func CountRequestedWithin(profiles []models.DoctorProfile, now time.Time, days int) int {
	n := 0
	for _, p := range profiles {
		if p.InactivationRequestedAt == nil {
			continue
		}
		if businessday.Elapsed(*p.InactivationRequestedAt, now) <= days {
			n++
		}
	}
	return n
}
