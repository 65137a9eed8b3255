package dto

import (
	"io"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

type SignupResult struct {
	Account *entity.Account
	Profile *entity.Profile
	// VerificationEmailSent is false when the account was created but the first
	// verification email could not be delivered.
	VerificationEmailSent bool
}

type SessionResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *entity.Account
	Profile   *entity.Profile
}

type ProfileList struct {
	Profiles []*entity.Profile
	Total    int
}

// Upload is a file received with a request, opened lazily.
type Upload struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}
