package appointment

import (
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type Capability string

const (
	CapOwnerPatient    Capability = "owner_patient"
	CapOwnerDoctor     Capability = "owner_doctor"
	CapDoctorAuxiliary Capability = "doctor_auxiliary"
	CapAdministrator   Capability = "administrator"
)

type Predicate func(ap *models.Appointment, actor identity.Actor) bool

var predicates = map[Capability]Predicate{
	CapOwnerPatient: func(ap *models.Appointment, a identity.Actor) bool {
		return a.Is(identity.RolePatient) && ap.PatientID == a.UserID
	},
	CapOwnerDoctor: func(ap *models.Appointment, a identity.Actor) bool {
		return a.Is(identity.RoleDoctor) && ap.DoctorID == a.UserID
	},
	CapDoctorAuxiliary: func(ap *models.Appointment, a identity.Actor) bool {
		return a.Is(identity.RoleAuxiliary) && a.AuxiliaryOf != 0 && ap.DoctorID == a.AuxiliaryOf
	},
	CapAdministrator: func(_ *models.Appointment, a identity.Actor) bool {
		return a.Is(identity.RoleAdministrator)
	},
}

func Holds(c Capability, ap *models.Appointment, actor identity.Actor) bool {
	p, ok := predicates[c]
	return ok && p(ap, actor)
}

type Transition string

const (
	TransitionCreate            Transition = "create"
	TransitionConfirm           Transition = "confirm"
	TransitionReject            Transition = "reject"
	TransitionCancel            Transition = "cancel"
	TransitionComplete          Transition = "complete"
	TransitionRequestReschedule Transition = "request_reschedule"
	TransitionReplaceSchedule   Transition = "replace_schedule"
)

// StatusNone is the "from" state of transitions that do not start from an
// existing appointment.
const StatusNone Status = ""

type guardKey struct {
	transition Transition
	from       Status
}

var (
	patientSide  = []Capability{CapOwnerPatient}
	providerSide = []Capability{CapOwnerDoctor, CapDoctorAuxiliary}
	eitherSide   = []Capability{CapOwnerPatient, CapOwnerDoctor, CapDoctorAuxiliary}
)

// guardTable lists, per (transition, current status), the capabilities that
// permit it. A missing row means the transition is not allowed from that
// status at all. Auxiliaries may confirm, reject and cancel for their doctor
// but may not request a reschedule.
var guardTable = map[guardKey][]Capability{
	{TransitionCreate, StatusNone}: eitherSide,

	{TransitionConfirm, StatusRequestedByDoctor}:          providerSide,
	{TransitionConfirm, StatusRequestedByPatient}:         patientSide,
	{TransitionConfirm, StatusReschedulePendingByDoctor}:  providerSide,
	{TransitionConfirm, StatusReschedulePendingByPatient}: patientSide,

	{TransitionReject, StatusReschedulePendingByDoctor}:  providerSide,
	{TransitionReject, StatusReschedulePendingByPatient}: patientSide,

	{TransitionCancel, StatusRequestedByDoctor}:          eitherSide,
	{TransitionCancel, StatusRequestedByPatient}:         eitherSide,
	{TransitionCancel, StatusConfirmed}:                  eitherSide,
	{TransitionCancel, StatusReschedulePendingByDoctor}:  eitherSide,
	{TransitionCancel, StatusReschedulePendingByPatient}: eitherSide,

	{TransitionComplete, StatusConfirmed}:                  providerSide,
	{TransitionComplete, StatusReschedulePendingByDoctor}:  providerSide,
	{TransitionComplete, StatusReschedulePendingByPatient}: providerSide,

	{TransitionRequestReschedule, StatusConfirmed}: {CapOwnerPatient, CapOwnerDoctor},

	{TransitionReplaceSchedule, StatusNone}: {CapOwnerDoctor, CapDoctorAuxiliary, CapAdministrator},
}

// Authorize looks up the row for (t, from) and returns the first capability
// the actor holds. No row yields a ConflictError, a row the actor cannot
// satisfy yields a ForbiddenError.
func Authorize(t Transition, from Status, ap *models.Appointment, actor identity.Actor) (Capability, error) {
	caps, ok := guardTable[guardKey{transition: t, from: from}]
	if !ok {
		return "", httperr.ErrConflict("invalid_transition")
	}
	for _, c := range caps {
		if Holds(c, ap, actor) {
			return c, nil
		}
	}
	return "", httperr.ErrForbidden("forbidden")
}

// Party is the side of the appointment a capability acts for.
type Party string

const (
	PartyPatient  Party = "patient"
	PartyProvider Party = "provider"
)

func (c Capability) Party() Party {
	if c == CapOwnerPatient {
		return PartyPatient
	}
	return PartyProvider
}

// IsParticipant reports whether the actor may see the appointment at all.
func IsParticipant(ap *models.Appointment, actor identity.Actor) bool {
	for _, c := range []Capability{CapOwnerPatient, CapOwnerDoctor, CapDoctorAuxiliary, CapAdministrator} {
		if Holds(c, ap, actor) {
			return true
		}
	}
	return false
}
