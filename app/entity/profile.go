package entity

import (
	"database/sql"
	"time"
)

type ProfileKind int

const (
	ProfileKindLearner ProfileKind = iota + 1
	ProfileKindInstructor
	ProfileKindAdmin
)

func (k ProfileKind) String() string {
	switch k {
	case ProfileKindLearner:
		return "learner"
	case ProfileKindInstructor:
		return "instructor"
	case ProfileKindAdmin:
		return "admin"
	}
	return "unknown"
}

// Role returns the account role owning profiles of this kind.
func (k ProfileKind) Role() Role {
	switch k {
	case ProfileKindInstructor:
		return RoleInstructor
	case ProfileKindAdmin:
		return RoleAdmin
	}
	return RoleLearner
}

// ProfileKindForRole maps an account role to the profile kind it owns.
func ProfileKindForRole(role Role) (ProfileKind, error) {
	switch role {
	case RoleLearner:
		return ProfileKindLearner, nil
	case RoleInstructor:
		return ProfileKindInstructor, nil
	case RoleAdmin:
		return ProfileKindAdmin, nil
	}
	return 0, ErrUnknownRole
}

type Profile struct {
	ID        string
	Kind      ProfileKind
	Name      string
	Email     string
	Image     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}
