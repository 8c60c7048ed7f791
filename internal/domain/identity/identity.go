// Package identity describes who is acting on the scheduling engine.
package identity

import "github.com/Cristiand11/portfolio-sub001/internal/httperr"

type Role string

const (
	RolePatient       Role = "patient"
	RoleDoctor        Role = "doctor"
	RoleAuxiliary     Role = "auxiliary"
	RoleAdministrator Role = "administrator"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RolePatient, RoleDoctor, RoleAuxiliary, RoleAdministrator:
		return r, nil
	}
	return "", httperr.ErrValidation("invalid_role")
}

// Actor is the authenticated caller. AuxiliaryOf is the doctor an auxiliary
// acts for; it is zero for every other role.
type Actor struct {
	UserID      uint
	Role        Role
	AuxiliaryOf uint
}

func (a Actor) Is(role Role) bool {
	return a.Role == role
}

// ActsForDoctor reports whether the actor is the doctor or one of the
// doctor's auxiliaries.
func (a Actor) ActsForDoctor(doctorID uint) bool {
	switch a.Role {
	case RoleDoctor:
		return a.UserID == doctorID
	case RoleAuxiliary:
		return a.AuxiliaryOf != 0 && a.AuxiliaryOf == doctorID
	}
	return false
}
