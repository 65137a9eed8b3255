package entity

import (
	"database/sql"
	"errors"
	"time"
)

type Role string

const (
	RoleLearner    Role = "learner"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// Roles lists every role an account can hold.
func Roles() []Role {
	return []Role{RoleLearner, RoleInstructor, RoleAdmin}
}

type Account struct {
	ID                         string
	Email                      string
	PasswordHash               string
	Role                       Role
	LearnerID                  sql.NullString
	InstructorID               sql.NullString
	AdminID                    sql.NullString
	IsVerified                 bool
	SignInFailureCount         int
	SignInLockedUntil          sql.NullTime
	VerificationToken          sql.NullString
	VerificationTokenExpiresAt sql.NullTime
	VerificationEmailsSent     int
	ResetToken                 sql.NullString
	ResetTokenExpiresAt        sql.NullTime
	ResetEmailsSent            int
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// ProfileID returns the id of the profile referenced for the account's role.
func (a *Account) ProfileID() string {
	switch a.Role {
	case RoleLearner:
		return a.LearnerID.String
	case RoleInstructor:
		return a.InstructorID.String
	case RoleAdmin:
		return a.AdminID.String
	}
	return ""
}

// SetProfileReference points the account at profileID and clears the other two references.
func (a *Account) SetProfileReference(kind ProfileKind, profileID string) {
	a.LearnerID = sql.NullString{}
	a.InstructorID = sql.NullString{}
	a.AdminID = sql.NullString{}

	ref := sql.NullString{String: profileID, Valid: true}
	switch kind {
	case ProfileKindLearner:
		a.LearnerID = ref
	case ProfileKindInstructor:
		a.InstructorID = ref
	case ProfileKindAdmin:
		a.AdminID = ref
	}
}

// IsSignInLocked reports whether a lockout is active at now.
func (a *Account) IsSignInLocked(now time.Time) bool {
	return a.SignInLockedUntil.Valid && a.SignInLockedUntil.Time.After(now)
}

func (a *Account) ClearVerificationRequest() {
	a.VerificationToken = sql.NullString{}
	a.VerificationTokenExpiresAt = sql.NullTime{}
	a.VerificationEmailsSent = 0
}

func (a *Account) ClearResetRequest() {
	a.ResetToken = sql.NullString{}
	a.ResetTokenExpiresAt = sql.NullTime{}
	a.ResetEmailsSent = 0
}

func (a *Account) ClearSignInFailures() {
	a.SignInFailureCount = 0
	a.SignInLockedUntil = sql.NullTime{}
}
